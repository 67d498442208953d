package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults mirror a small stainless-steel-like melt pool under one
// powered laser pass.
const (
	DefaultNx = 32
	DefaultNy = 32
	DefaultNz = 32

	DefaultH  = 20e-6
	DefaultDt = 5e-8

	DefaultRho0 = 7000.0
	DefaultT0   = 300.0
	DefaultM0   = 0.056

	DefaultOutputInterval = 100
)

// LaserPathConfig is the polyline the beam travels: corners in XPos/YPos
// and one on/off power multiplier per segment in Switch.
type LaserPathConfig struct {
	XPos   []float64 `yaml:"x_pos"`
	YPos   []float64 `yaml:"y_pos"`
	Switch []float64 `yaml:"switch"`
}

// Config holds every physical parameter of a run, in physical units as
// read from YAML. Params.Derive converts these into lattice units.
type Config struct {
	Nx int `yaml:"nx"`
	Ny int `yaml:"ny"`
	Nz int `yaml:"nz"`

	H  float64 `yaml:"h"`
	Dt float64 `yaml:"dt"`

	Rho0 float64 `yaml:"rho0"`
	T0   float64 `yaml:"t0"`
	M0   float64 `yaml:"m0"`

	Gravity          float64 `yaml:"gravity"`
	DynamicViscosity float64 `yaml:"dynamic_viscosity"`
	STCoeff          float64 `yaml:"st_coeff"`
	STGradCoeff      float64 `yaml:"st_grad_coeff"`
	RPCoeff          float64 `yaml:"rp_coeff"`
	LaserPower       float64 `yaml:"laser_power"`
	BeamSize         float64 `yaml:"beam_size"`
	AbsorbedFraction float64 `yaml:"absorbed_fraction"`
	ScanningVel      float64 `yaml:"scanning_vel"`
	HeatCapacity     float64 `yaml:"heat_capacity"`
	ThermalDiffL     float64 `yaml:"thermal_diffusivitity_l"`
	ThermalDiffS     float64 `yaml:"thermal_diffusivitity_s"`
	Emissivity       float64 `yaml:"emissivity"`
	HConv            float64 `yaml:"h_conv"`
	LatentHeatFusion float64 `yaml:"latent_heat_fusion"`
	LatentHeatEvap   float64 `yaml:"latent_heat_evap"`
	TLiquidus        float64 `yaml:"t_liquidus"`
	TSolidus         float64 `yaml:"t_solidus"`
	TEvap            float64 `yaml:"t_evap"`
	EnthalpyS        float64 `yaml:"enthalpy_s"`
	EnthalpyL        float64 `yaml:"enthalpy_l"`

	LaserPath LaserPathConfig `yaml:"laser_path"`

	OutputInterval int  `yaml:"output_interval"`
	FluidOnly      bool `yaml:"fluid_only"`
}

// DefaultConfig returns a small configuration, with the laser switched on
// for a single straight pass along x, suitable as a starting point for
// scenarios and calibration sweeps.
func DefaultConfig() *Config {
	return &Config{
		Nx: DefaultNx, Ny: DefaultNy, Nz: DefaultNz,
		H: DefaultH, Dt: DefaultDt,
		Rho0: DefaultRho0, T0: DefaultT0, M0: DefaultM0,
		Gravity:          9.81,
		DynamicViscosity: 6e-3,
		STCoeff:          1.8,
		STGradCoeff:      -4.3e-4,
		RPCoeff:          0.55,
		LaserPower:       200.0,
		BeamSize:         50e-6,
		AbsorbedFraction: 0.35,
		ScanningVel:      0.8,
		HeatCapacity:     700.0,
		ThermalDiffL:     6e-6,
		ThermalDiffS:     5e-6,
		Emissivity:       0.3,
		HConv:            100.0,
		LatentHeatFusion: 2.7e5,
		LatentHeatEvap:   7.45e6,
		TLiquidus:        1700.0,
		TSolidus:         1650.0,
		TEvap:            3090.0,
		EnthalpyS:        700.0 * 1650.0,
		EnthalpyL:        700.0*1650.0 + 2.7e5,
		LaserPath: LaserPathConfig{
			XPos:   []float64{0, DefaultNx * DefaultH},
			YPos:   []float64{DefaultNy * DefaultH / 2, DefaultNy * DefaultH / 2},
			Switch: []float64{1.0},
		},
		OutputInterval: DefaultOutputInterval,
	}
}

// Load reads a YAML config, starting from DefaultConfig and overlaying
// the file's keys, then validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
