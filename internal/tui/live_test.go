package tui

import (
	"testing"

	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/sim"
)

func TestModelUpdateTracksStep(t *testing.T) {
	m := NewModel("quiescent", 100)
	snap := sim.Snapshot{
		Step:  10,
		Phase: []field.Phase{field.Liquid},
		Mass:  []float64{1.0},
		T:     []float64{900},
	}
	next, _ := m.Update(StepMsg{Snapshot: snap})
	nm := next.(Model)
	if nm.step != 10 {
		t.Fatalf("expected step 10, got %d", nm.step)
	}
	if nm.MaxTemperatureValue() != 900 {
		t.Fatalf("expected max temp 900, got %v", nm.MaxTemperatureValue())
	}
}

func TestModelUpdateDoneSetsErr(t *testing.T) {
	m := NewModel("quiescent", 10)
	next, cmd := m.Update(DoneMsg{Err: nil})
	nm := next.(Model)
	if !nm.done {
		t.Fatal("expected done=true")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestModelViewRendersWithoutPanicking(t *testing.T) {
	m := NewModel("quiescent", 10)
	if out := m.View(); out == "" {
		t.Fatal("expected non-empty view")
	}
}
