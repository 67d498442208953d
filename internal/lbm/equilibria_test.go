package lbm

import (
	"math"
	"testing"

	"github.com/san-kum/meltlbm/internal/lattice"
)

func TestEquilFSumsToRho(t *testing.T) {
	rho := 1.2
	u := lattice.Vec3{0.01, -0.02, 0.005}
	sum := 0.0
	for q := 0; q < 19; q++ {
		sum += EquilF(q, rho, u)
	}
	if math.Abs(sum-rho) > 1e-9 {
		t.Fatalf("expected sum_q EquilF = rho = %v, got %v", rho, sum)
	}
}

func TestEquilFAtRestReducesToWeightTimesRho(t *testing.T) {
	rho := 2.0
	for q := 0; q < 19; q++ {
		got := EquilF(q, rho, lattice.Vec3{})
		want := lattice.Weights[q] * rho
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("q=%d: expected %v, got %v", q, want, got)
		}
	}
}

func TestEquilHSumsToEnthalpy(t *testing.T) {
	enthalpy := 500.0
	T := 900.0
	cp := 0.5
	u := lattice.Vec3{0.01, 0, 0}
	sum := 0.0
	for q := 0; q < 19; q++ {
		sum += EquilH(q, enthalpy, T, u, cp)
	}
	if math.Abs(sum-enthalpy) > 1e-9 {
		t.Fatalf("expected sum_q EquilH = enthalpy = %v, got %v", enthalpy, sum)
	}
}

func TestForcingFZeroWhenForceIsZero(t *testing.T) {
	for q := 0; q < 19; q++ {
		got := ForcingF(q, lattice.Vec3{0.01, 0, 0}, lattice.Vec3{}, 0.8)
		if got != 0 {
			t.Fatalf("q=%d: expected zero forcing for zero volume force, got %v", q, got)
		}
	}
}

func TestForcingHScalesWithWeight(t *testing.T) {
	rho := 1.0
	power := 10.0
	for q := 0; q < 19; q++ {
		got := ForcingH(q, power, rho)
		want := power / rho * lattice.Weights[q]
		if got != want {
			t.Fatalf("q=%d: expected %v, got %v", q, want, got)
		}
	}
}
