package metrics

import (
	"testing"

	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/sim"
)

func TestMassDriftZeroWhenConstant(t *testing.T) {
	m := NewMassDrift()
	snap := sim.Snapshot{Phase: []field.Phase{field.Liquid, field.LG}, Mass: []float64{1.0, 0.5}}
	m.Observe(snap)
	m.Observe(snap)
	if m.Value() != 0 {
		t.Fatalf("expected zero drift for identical snapshots, got %v", m.Value())
	}
}

func TestMassDriftDetectsChange(t *testing.T) {
	m := NewMassDrift()
	m.Observe(sim.Snapshot{Phase: []field.Phase{field.Liquid}, Mass: []float64{1.0}})
	m.Observe(sim.Snapshot{Phase: []field.Phase{field.Liquid}, Mass: []float64{1.1}})
	if m.Value() <= 0 {
		t.Fatalf("expected positive drift, got %v", m.Value())
	}
}

func TestMaxTemperatureTracksPeak(t *testing.T) {
	m := NewMaxTemperature()
	m.Observe(sim.Snapshot{T: []float64{300, 500}})
	m.Observe(sim.Snapshot{T: []float64{400}})
	if m.Value() != 500 {
		t.Fatalf("expected max 500, got %v", m.Value())
	}
}

func TestMaxTemperatureReset(t *testing.T) {
	m := NewMaxTemperature()
	m.Observe(sim.Snapshot{T: []float64{900}})
	m.Reset()
	if m.Value() != 0 {
		t.Fatalf("expected reset to zero, got %v", m.Value())
	}
}
