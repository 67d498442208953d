// Package field holds the dense, flattened per-cell grids the LB core
// operates on, plus the periodic-wraparound neighbor indexing every
// stencil kernel shares.
package field

import "github.com/san-kum/meltlbm/internal/lattice"

// Grid describes a uniform axis-aligned cell grid of shape (Nx, Ny, Nz).
// Cell spacing is unit and every stencil read wraps around each axis
// modulo its extent; physical walls are encoded via Phase, not by
// truncating the array.
type Grid struct {
	Nx, Ny, Nz int
}

// Size returns the total number of cells Nx*Ny*Nz.
func (g Grid) Size() int { return g.Nx * g.Ny * g.Nz }

// Index flattens (x, y, z) cell coordinates into a linear index, wrapping
// each coordinate modulo its axis extent.
func (g Grid) Index(x, y, z int) int {
	x = wrap(x, g.Nx)
	y = wrap(y, g.Ny)
	z = wrap(z, g.Nz)
	return (x*g.Ny+y)*g.Nz + z
}

// Coords converts a linear index back into (x, y, z) cell coordinates.
func (g Grid) Coords(idx int) (x, y, z int) {
	z = idx % g.Nz
	idx /= g.Nz
	y = idx % g.Ny
	x = idx / g.Ny
	return
}

// wrap returns v mod n in [0, n), handling negative v.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Neighbor returns the linear index of the cell reached from idx by
// offset (dx, dy, dz), wrapping around every axis.
func (g Grid) Neighbor(idx, dx, dy, dz int) int {
	x, y, z := g.Coords(idx)
	return g.Index(x+dx, y+dy, z+dz)
}

// VelNeighbor returns the linear index of the neighbor in lattice
// direction q.
func (g Grid) VelNeighbor(idx, q int) int {
	e := lattice.Vels[q]
	return g.Neighbor(idx, e[0], e[1], e[2])
}
