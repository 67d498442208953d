package field

import "github.com/san-kum/meltlbm/internal/lattice"

// Fields holds every dense per-cell grid the LB core reads or writes.
// F and H are flattened (Nx*Ny*Nz*19,) distributions; every other slice
// is flattened (Nx*Ny*Nz,). Fields are mutated only by the driver loop;
// every kernel reads one Fields snapshot and writes into a distinct
// output Fields (or output slice), never partially updating the one it
// is reading from.
type Fields struct {
	Grid Grid

	F []float64 // momentum distribution, index*19+q
	H []float64 // enthalpy distribution, index*19+q

	Phase []Phase
	Mass  []float64

	Rho      []float64
	U        []lattice.Vec3
	Enthalpy []float64
	T        []float64
	Vof      []float64

	Melted []bool

	Centroid []lattice.Vec3
}

// New allocates zeroed Fields for the given grid. Centroid must be filled
// in by the caller from the externally supplied mesh before use.
func New(g Grid) *Fields {
	n := g.Size()
	return &Fields{
		Grid:     g,
		F:        make([]float64, n*lattice.N),
		H:        make([]float64, n*lattice.N),
		Phase:    make([]Phase, n),
		Mass:     make([]float64, n),
		Rho:      make([]float64, n),
		U:        make([]lattice.Vec3, n),
		Enthalpy: make([]float64, n),
		T:        make([]float64, n),
		Vof:      make([]float64, n),
		Melted:   make([]bool, n),
		Centroid: make([]lattice.Vec3, n),
	}
}

// FAt returns a view of the q=0..18 distribution values at cell idx.
func (f *Fields) FAt(idx int) []float64 { return f.F[idx*lattice.N : idx*lattice.N+lattice.N] }

// HAt returns a view of the q=0..18 enthalpy-distribution values at cell idx.
func (f *Fields) HAt(idx int) []float64 { return f.H[idx*lattice.N : idx*lattice.N+lattice.N] }

// CloneFH allocates fresh F and H buffers of the same size as f's, for use
// as a kernel's output buffer while f is read.
func (f *Fields) CloneFH() (newF, newH []float64) {
	return make([]float64, len(f.F)), make([]float64, len(f.H))
}

// ClonePhaseMass allocates fresh Phase and Mass buffers of the same size.
func (f *Fields) ClonePhaseMass() ([]Phase, []float64) {
	return make([]Phase, len(f.Phase)), make([]float64, len(f.Mass))
}
