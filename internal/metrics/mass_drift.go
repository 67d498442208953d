package metrics

import (
	"math"

	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/sim"
)

// MassDrift tracks the largest relative deviation of total conserved
// mass (lattice units: rho summed over LIQUID, mass over LG) from the
// first snapshot it observes.
type MassDrift struct {
	name         string
	initialMass  float64
	maxDrift     float64
	samples      int
}

// NewMassDrift returns a MassDrift metric with no observations yet.
func NewMassDrift() *MassDrift {
	return &MassDrift{name: "mass_drift"}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(s sim.Snapshot) {
	total := 0.0
	for i, ph := range s.Phase {
		if ph == field.Liquid || ph == field.LG {
			total += s.Mass[i]
		}
	}

	if m.samples == 0 {
		m.initialMass = total
	}
	m.samples++

	if m.initialMass == 0 {
		return
	}
	drift := math.Abs(total-m.initialMass) / math.Abs(m.initialMass)
	if drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initialMass = 0
	m.maxDrift = 0
	m.samples = 0
}
