package metrics

import "github.com/san-kum/meltlbm/internal/sim"

// MaxTemperature tracks the highest physical temperature (K) seen
// across every observed snapshot's cells.
type MaxTemperature struct {
	name string
	max  float64
}

// NewMaxTemperature returns a MaxTemperature metric with no observations
// yet.
func NewMaxTemperature() *MaxTemperature {
	return &MaxTemperature{name: "max_temperature"}
}

func (m *MaxTemperature) Name() string { return m.name }

func (m *MaxTemperature) Observe(s sim.Snapshot) {
	for _, t := range s.T {
		if t > m.max {
			m.max = t
		}
	}
}

func (m *MaxTemperature) Value() float64 { return m.max }

func (m *MaxTemperature) Reset() { m.max = 0 }
