package config

import (
	"fmt"

	"github.com/san-kum/meltlbm/internal/lbm"
	"github.com/san-kum/meltlbm/internal/units"
)

// Scales derives the characteristic unit system from this config's h,
// dt, rho0, T0, M0.
func (c *Config) Scales() units.Scales {
	return units.NewScales(units.Physical{H: c.H, Dt: c.Dt, Rho0: c.Rho0, T0: c.T0, M0: c.M0})
}

// ToParams converts every physical field to lattice units and derives
// the relaxation times, returning a ready-to-use lbm.Params.
func (c *Config) ToParams() lbm.Params {
	s := c.Scales()

	p := lbm.Params{
		Gravity:          units.ToLattice(c.Gravity, s.Length/(s.Time*s.Time)),
		ViscosityNu:      units.ToLattice(c.DynamicViscosity, s.Mass/(s.Length*s.Time)),
		STCoeff:          units.ToLattice(c.STCoeff, s.Force/s.Length),
		STGradCoeff:      units.ToLattice(c.STGradCoeff, s.Force/(s.Length*s.Temperature)),
		RPCoeff:          c.RPCoeff,
		LaserPower:       units.ToLattice(c.LaserPower, s.Energy/s.Time),
		BeamSize:         units.ToLattice(c.BeamSize, s.Length),
		AbsorbedFraction: c.AbsorbedFraction,
		ScanningVel:      units.ToLattice(c.ScanningVel, s.Length/s.Time),
		HeatCapacity:     units.ToLattice(c.HeatCapacity, s.Energy/(s.Mass*s.Temperature)),

		ThermalDiffusivityLiquid: units.ToLattice(c.ThermalDiffL, s.Length*s.Length/s.Time),
		ThermalDiffusivitySolid:  units.ToLattice(c.ThermalDiffS, s.Length*s.Length/s.Time),

		Emissivity: c.Emissivity,
		HConv:      units.ToLattice(c.HConv, s.Mass/(s.Time*s.Time*s.Time*s.Temperature)),

		LatentHeatFusion: units.ToLattice(c.LatentHeatFusion, s.Energy/s.Mass),
		LatentHeatEvap:   units.ToLattice(c.LatentHeatEvap, s.Energy/s.Mass),

		TLiquidus: units.ToLattice(c.TLiquidus, s.Temperature),
		TSolidus:  units.ToLattice(c.TSolidus, s.Temperature),
		TEvap:     units.ToLattice(c.TEvap, s.Temperature),

		EnthalpyS: units.ToLattice(c.EnthalpyS, s.Energy/s.Mass),
		EnthalpyL: units.ToLattice(c.EnthalpyL, s.Energy/s.Mass),

		PAtm:            s.AtmPressureLattice(),
		GasConstant:     s.GasConstantLattice(),
		StefanBoltzmann: s.StefanBoltzmannLattice(),
	}
	p.Derive()
	return p
}

// Sentinel configuration errors, returned wrapped with context from
// Validate.
var (
	ErrInvalidGrid        = fmt.Errorf("config: invalid grid dimensions")
	ErrInvalidPhaseChange = fmt.Errorf("config: invalid phase-change parameters")
	ErrInvalidTimestep    = fmt.Errorf("config: invalid length or timestep scale")
)

// ConfigError wraps a sentinel error with the offending config value.
type ConfigError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s (%s = %v)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }

// Validate rejects nonphysical configurations: non-positive grid
// extents, a non-positive length/time scale, and an enthalpy plateau
// that does not strictly widen from solid to liquid.
func (c *Config) Validate() error {
	if c.Nx < 1 || c.Ny < 1 || c.Nz < 1 {
		return &ConfigError{Field: "nx,ny,nz", Value: float64(c.Nx), Wrapped: ErrInvalidGrid}
	}
	if c.H <= 0 {
		return &ConfigError{Field: "h", Value: c.H, Wrapped: ErrInvalidTimestep}
	}
	if c.Dt <= 0 {
		return &ConfigError{Field: "dt", Value: c.Dt, Wrapped: ErrInvalidTimestep}
	}
	if c.EnthalpyL <= c.EnthalpyS {
		return &ConfigError{Field: "enthalpy_l", Value: c.EnthalpyL, Wrapped: ErrInvalidPhaseChange}
	}
	if c.TLiquidus <= c.TSolidus {
		return &ConfigError{Field: "t_liquidus", Value: c.TLiquidus, Wrapped: ErrInvalidPhaseChange}
	}
	if len(c.LaserPath.XPos) != len(c.LaserPath.YPos) || len(c.LaserPath.XPos) < 2 {
		return &ConfigError{Field: "laser_path.x_pos", Value: float64(len(c.LaserPath.XPos)), Wrapped: ErrInvalidPhaseChange}
	}
	if len(c.LaserPath.Switch) != len(c.LaserPath.XPos)-1 {
		return &ConfigError{Field: "laser_path.switch", Value: float64(len(c.LaserPath.Switch)), Wrapped: ErrInvalidPhaseChange}
	}
	return nil
}

// StabilityWarning is a non-fatal diagnostic: one of the relaxation
// times has drifted outside the [0.5, 1] range numerical stability
// favors. It is never returned as an error.
type StabilityWarning struct {
	TauNu          float64
	TauAlphaLiquid float64
	TauAlphaSolid  float64
}

func (w StabilityWarning) String() string {
	return fmt.Sprintf("tau_nu=%.4f tau_alpha_l=%.4f tau_alpha_s=%.4f outside [0.5, 1]",
		w.TauNu, w.TauAlphaLiquid, w.TauAlphaSolid)
}

// CheckStability reports a StabilityWarning with ok=false when any
// relaxation time in p falls outside [0.5, 1], or ok=true when all are
// in range.
func CheckStability(p lbm.Params) (warning StabilityWarning, ok bool) {
	inRange := func(tau float64) bool { return tau >= 0.5 && tau <= 1.0 }
	if inRange(p.TauNu) && inRange(p.TauAlphaLiquid) && inRange(p.TauAlphaSolid) {
		return StabilityWarning{}, true
	}
	return StabilityWarning{TauNu: p.TauNu, TauAlphaLiquid: p.TauAlphaLiquid, TauAlphaSolid: p.TauAlphaSolid}, false
}
