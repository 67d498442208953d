package config

// Presets are small, literal configurations for the scenarios in
// experiment.Registry, each isolating the physics its name describes.
var Presets = map[string]*Config{
	"quiescent": preset(func(c *Config) {
		c.Nx, c.Ny, c.Nz = 8, 8, 8
		c.Gravity, c.STCoeff, c.STGradCoeff, c.RPCoeff = 0, 0, 0, 0
		c.LaserPath.Switch = []float64{0}
	}),
	"conduction": preset(func(c *Config) {
		c.Nx, c.Ny, c.Nz = 16, 16, 16
		c.Gravity, c.STCoeff, c.STGradCoeff, c.RPCoeff = 0, 0, 0, 0
		c.LaserPath.Switch = []float64{0}
	}),
	"droplet": preset(func(c *Config) {
		c.Nx, c.Ny, c.Nz = 20, 20, 20
		c.Gravity, c.RPCoeff = 0, 0
		c.LaserPath.Switch = []float64{0}
	}),
	"agitated": preset(func(c *Config) {
		c.Nx, c.Ny, c.Nz = 16, 16, 8
		c.STCoeff, c.STGradCoeff, c.RPCoeff = 0, 0, 0
		c.LaserPath.Switch = []float64{0}
		c.FluidOnly = true
	}),
	"freeze": preset(func(c *Config) {
		c.Nx, c.Ny, c.Nz = 8, 8, 8
		c.Gravity, c.RPCoeff = 0, 0
		c.LaserPath.Switch = []float64{0}
	}),
}

func preset(override func(*Config)) *Config {
	cfg := DefaultConfig()
	override(cfg)
	return cfg
}

// GetPreset returns the named preset config, or nil if unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns every registered preset name.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
