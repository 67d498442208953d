package units

import "testing"

func TestNewScalesIdentity(t *testing.T) {
	s := NewScales(Physical{H: 1, Dt: 1, Rho0: 1, T0: 1, M0: 1})
	if s.Length != 1 || s.Time != 1 || s.Density != 1 || s.Temperature != 1 || s.MolarMass != 1 {
		t.Fatalf("identity scales wrong: %+v", s)
	}
	if s.Mass != 1 || s.Force != 1 || s.Energy != 1 || s.Pressure != 1 || s.Molar != 1 {
		t.Fatalf("derived identity scales wrong: %+v", s)
	}
	if s.AtmPressureLattice() != AtmPressure {
		t.Fatalf("identity pressure conversion should be a no-op")
	}
}

func TestToLattice(t *testing.T) {
	got := ToLattice(10, 2)
	if got != 5 {
		t.Fatalf("ToLattice(10,2) = %v, want 5", got)
	}
}

func TestNewScalesDerivedNonTrivial(t *testing.T) {
	s := NewScales(Physical{H: 2e-5, Dt: 1e-7, Rho0: 7800, T0: 300, M0: 0.056})
	if s.Mass <= 0 || s.Force <= 0 || s.Energy <= 0 || s.Pressure <= 0 {
		t.Fatalf("derived scales should be positive: %+v", s)
	}
	// Mass = rho0 * h^3
	wantMass := s.Density * s.Length * s.Length * s.Length
	if s.Mass != wantMass {
		t.Fatalf("Mass = %v, want %v", s.Mass, wantMass)
	}
}
