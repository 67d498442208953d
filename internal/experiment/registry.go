// Package experiment registers the literal scenarios from spec section
// 8 as constructible sim.Driver runs, so both tests and the meltlbm CLI
// exercise the same construction code.
package experiment

import (
	"fmt"

	"github.com/san-kum/meltlbm/internal/sim"
)

// Factory builds a ready-to-run Driver for one scenario.
type Factory func() (*sim.Driver, error)

// Registry maps scenario names to factories.
type Registry struct {
	scenarios map[string]Factory
}

// NewRegistry returns a Registry with every built-in scenario registered.
func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]Factory)}
	r.register()
	return r
}

func (r *Registry) register() {
	r.scenarios["quiescent"] = QuiescentFluid
	r.scenarios["conduction"] = ConductionSlab
	r.scenarios["droplet"] = DropletCurvature
	r.scenarios["agitated"] = AgitatedMassConservation
	r.scenarios["freeze"] = SolidFreeze
}

// Get builds the named scenario's Driver.
func (r *Registry) Get(name string) (*sim.Driver, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown scenario %q", name)
	}
	return fn()
}

// List returns every registered scenario name.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	return names
}
