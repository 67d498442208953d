// Package units converts physical simulation inputs into the lattice-unit
// system where h = dt = rho0 = T0 = M0 = 1, per spec section 4's
// nondimensionalization.
package units

// Physical constants, in SI units, converted to lattice units by Scales
// before use anywhere in the LB core.
const (
	AtmPressure     = 101325.0 // Pa
	GasConstant     = 8.314    // J/(K*mol)
	StefanBoltzmann = 5.67e-8  // W/(m^2*K^4)
)

// Physical gives the characteristic physical scales that define the
// lattice-unit system: one cell spacing, one timestep, the reference
// density, temperature, and molar mass.
type Physical struct {
	H     float64 // characteristic length [m]
	Dt    float64 // characteristic time [s]
	Rho0  float64 // reference density [kg/m^3]
	T0    float64 // reference temperature [K]
	M0    float64 // reference molar mass [kg/mol]
}

// Scales holds the derived conversion factors: physical = lattice * C_x.
type Scales struct {
	Length      float64
	Time        float64
	Density     float64
	Temperature float64
	MolarMass   float64
	Mass        float64
	Force       float64
	Energy      float64
	Pressure    float64
	Molar       float64
}

// NewScales derives every conversion factor from the characteristic
// physical scales. Lattice-unit references are h=dt=rho0=T0=M0=1.
func NewScales(p Physical) Scales {
	s := Scales{
		Length:      p.H,
		Time:        p.Dt,
		Density:     p.Rho0,
		Temperature: p.T0,
		MolarMass:   p.M0,
	}
	s.Mass = s.Density * s.Length * s.Length * s.Length
	s.Force = s.Mass * s.Length / (s.Time * s.Time)
	s.Energy = s.Force * s.Length
	s.Pressure = s.Force / (s.Length * s.Length)
	s.Molar = s.Mass / s.MolarMass
	return s
}

// ToLattice converts a physical quantity with the given physical unit
// conversion factor into lattice units: lattice = physical / factor.
func ToLattice(physical, factor float64) float64 {
	return physical / factor
}

// AtmPressureLattice converts the fixed atmospheric pressure constant to
// lattice units using s.Pressure.
func (s Scales) AtmPressureLattice() float64 {
	return ToLattice(AtmPressure, s.Pressure)
}

// GasConstantLattice converts the fixed gas constant to lattice units.
func (s Scales) GasConstantLattice() float64 {
	return ToLattice(GasConstant, s.Energy/(s.Temperature*s.Molar))
}

// StefanBoltzmannLattice converts the fixed Stefan-Boltzmann constant to
// lattice units.
func (s Scales) StefanBoltzmannLattice() float64 {
	return ToLattice(StefanBoltzmann, s.Mass/(s.Time*s.Time*s.Time)/(s.Temperature*s.Temperature*s.Temperature*s.Temperature))
}
