// Package lbm implements the coupled D3Q19 momentum/enthalpy lattice
// Boltzmann kernels: equilibria and forcing, macroscopic reductions,
// free-surface geometry, source assembly, BGK collision, phase-aware
// streaming with mass accounting, and the phase reinitializer. Every
// kernel is dispatched through compute.ParallelFor and reads one
// field.Fields snapshot while writing a fresh output buffer.
package lbm

import "github.com/san-kum/meltlbm/internal/lattice"

// Params holds every physical input already converted to lattice units
// (h=dt=rho0=T0=M0=1), ready for use by the kernels in this package.
type Params struct {
	Gravity        float64 // magnitude; applied along -z
	ViscosityNu    float64 // kinematic viscosity
	STCoeff        float64 // surface tension sigma
	STGradCoeff    float64 // d(sigma)/dT, Marangoni coefficient
	RPCoeff        float64 // recoil pressure multiplier r

	LaserPower       float64
	BeamSize         float64
	AbsorbedFraction float64
	ScanningVel      float64

	HeatCapacity float64 // Cp

	ThermalDiffusivityLiquid float64
	ThermalDiffusivitySolid  float64

	Emissivity float64
	HConv      float64

	LatentHeatFusion float64
	LatentHeatEvap   float64

	TLiquidus float64
	TSolidus  float64
	TEvap     float64

	EnthalpyS float64
	EnthalpyL float64

	PAtm            float64 // atmospheric pressure, lattice units
	GasConstant     float64
	StefanBoltzmann float64

	// Reference constants, fixed by the lattice-unit system (spec section 4).
	Rho0 float64 // = 1
	T0   float64 // = 1
	M0   float64 // = 1

	Theta float64 // LG mass slack, default 1e-3
	M     float64 // half-step forcing factor in compute_u, = 0.5

	// Derived relaxation times, tau = nu/(cs^2*dt) + 1/2.
	TauNu          float64
	TauAlphaLiquid float64
	TauAlphaSolid  float64
}

// Derive fills in TauNu/TauAlphaLiquid/TauAlphaSolid and the fixed
// lattice-unit reference constants from the diffusive coefficients
// already set on p. dt is always 1 in lattice units.
func (p *Params) Derive() {
	const dt = 1.0
	p.Rho0, p.T0, p.M0 = 1, 1, 1
	if p.Theta == 0 {
		p.Theta = 1e-3
	}
	if p.M == 0 {
		p.M = 0.5
	}
	p.TauNu = p.ViscosityNu/(lattice.Cs2*dt) + 0.5
	p.TauAlphaLiquid = p.ThermalDiffusivityLiquid/(lattice.Cs2*dt) + 0.5
	p.TauAlphaSolid = p.ThermalDiffusivitySolid/(lattice.Cs2*dt) + 0.5
}

// Gravity3 returns the lattice-unit gravity vector (0, 0, -g).
func (p Params) Gravity3() lattice.Vec3 {
	return lattice.Vec3{0, 0, -p.Gravity}
}
