package lbm

import (
	"math"
	"testing"

	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

func TestStreamFZeroesGasAndWall(t *testing.T) {
	g := field.Grid{Nx: 2, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Gas, field.Wall}
	p := testParams()

	collF := make([]float64, g.Size()*lattice.N)
	streamedF := make([]float64, g.Size()*lattice.N)
	newMass := make([]float64, g.Size())

	StreamF(f, p, collF, streamedF, newMass)

	for i := range streamedF {
		if streamedF[i] != 0 {
			t.Fatalf("expected zero streamed output for GAS/WALL, got %v at %d", streamedF[i], i)
		}
	}
	for i := range newMass {
		if newMass[i] != 0 {
			t.Fatalf("expected zero mass for GAS/WALL, got %v at %d", newMass[i], i)
		}
	}
}

func TestStreamFBounceBackOffWall(t *testing.T) {
	g := field.Grid{Nx: 2, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.Wall}
	f.Rho[0] = 1
	p := testParams()

	collF := make([]float64, g.Size()*lattice.N)
	for q := 0; q < lattice.N; q++ {
		collF[q] = float64(q + 1)
	}
	streamedF := make([]float64, g.Size()*lattice.N)
	newMass := make([]float64, g.Size())

	StreamF(f, p, collF, streamedF, newMass)

	qPlusX := 1
	for q, e := range lattice.Vels {
		if e[0] == 1 && e[1] == 0 && e[2] == 0 {
			qPlusX = q
		}
	}
	revq := lattice.Rev[qPlusX]
	out := streamedF[0:lattice.N]
	if out[qPlusX] != collF[revq] {
		t.Fatalf("expected bounce-back value collF[%d]=%v at direction %d, got %v", revq, collF[revq], qPlusX, out[qPlusX])
	}
}

func TestStreamFLiquidMassEqualsRho(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.Liquid, field.Liquid}
	f.Rho[1] = 1.7
	p := testParams()

	collF := make([]float64, g.Size()*lattice.N)
	streamedF := make([]float64, g.Size()*lattice.N)
	newMass := make([]float64, g.Size())

	StreamF(f, p, collF, streamedF, newMass)

	if math.Abs(newMass[1]-f.Rho[1]) > 1e-12 {
		t.Fatalf("expected LIQUID cell mass to equal rho=%v, got %v", f.Rho[1], newMass[1])
	}
}

func TestStreamHWallSuppliesIsothermalEquilibrium(t *testing.T) {
	g := field.Grid{Nx: 2, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.Wall}
	p := testParams()

	collH := make([]float64, g.Size()*lattice.N)
	streamedH := make([]float64, g.Size()*lattice.N)

	StreamH(f, p, collH, streamedH)

	qPlusX := 1
	for q, e := range lattice.Vels {
		if e[0] == 1 && e[1] == 0 && e[2] == 0 {
			qPlusX = q
		}
	}
	want := EquilH(qPlusX, p.T0*p.HeatCapacity, p.T0, lattice.Vec3{}, p.HeatCapacity)
	if streamedH[qPlusX] != want {
		t.Fatalf("expected isothermal-wall equilibrium %v, got %v", want, streamedH[qPlusX])
	}
}

func TestStreamHGasBouncesBack(t *testing.T) {
	g := field.Grid{Nx: 2, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.Gas}
	p := testParams()

	collH := make([]float64, g.Size()*lattice.N)
	for q := 0; q < lattice.N; q++ {
		collH[q] = float64(q + 1)
	}
	streamedH := make([]float64, g.Size()*lattice.N)

	StreamH(f, p, collH, streamedH)

	qPlusX := 1
	for q, e := range lattice.Vels {
		if e[0] == 1 && e[1] == 0 && e[2] == 0 {
			qPlusX = q
		}
	}
	revq := lattice.Rev[qPlusX]
	if streamedH[qPlusX] != collH[revq] {
		t.Fatalf("expected bounce-back value collH[%d]=%v, got %v", revq, collH[revq], streamedH[qPlusX])
	}
}
