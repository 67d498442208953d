package lbm

import (
	"math"
	"testing"

	"github.com/san-kum/meltlbm/internal/field"
)

func TestReiniLGToLiquidPromotesOverfilled(t *testing.T) {
	g := field.Grid{Nx: 1, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase[0] = field.LG
	for q := range f.FAt(0) {
		f.FAt(0)[q] = 1.0 / 19.0
	}
	f.Mass[0] = 2.0
	p := testParams()

	ReiniLGToLiquid(f, p)

	if f.Phase[0] != field.Liquid {
		t.Fatalf("expected overfilled LG cell promoted to LIQUID, got %v", f.Phase[0])
	}
}

func TestReiniLGToLiquidLeavesUnderfilledAlone(t *testing.T) {
	g := field.Grid{Nx: 1, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase[0] = field.LG
	for q := range f.FAt(0) {
		f.FAt(0)[q] = 1.0 / 19.0
	}
	f.Mass[0] = 0.5
	p := testParams()

	ReiniLGToLiquid(f, p)

	if f.Phase[0] != field.LG {
		t.Fatalf("expected underfilled LG cell to remain LG, got %v", f.Phase[0])
	}
}

func TestReiniLGToGasDemotesDrained(t *testing.T) {
	g := field.Grid{Nx: 1, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase[0] = field.LG
	for q := range f.FAt(0) {
		f.FAt(0)[q] = 1.0 / 19.0
	}
	f.Mass[0] = -2.0
	p := testParams()

	ReiniLGToGas(f, p)

	if f.Phase[0] != field.Gas {
		t.Fatalf("expected drained LG cell demoted to GAS, got %v", f.Phase[0])
	}
}

func TestReiniLiquidToLGNextToGas(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Gas, field.Liquid, field.Gas}
	idx := g.Index(1, 0, 0)
	for q := range f.FAt(idx) {
		f.FAt(idx)[q] = 1.0 / 19.0
	}
	p := testParams()

	ReiniLiquidToLG(f, p)

	if f.Phase[idx] != field.LG {
		t.Fatalf("expected LIQUID cell bordering GAS demoted to LG, got %v", f.Phase[idx])
	}
	if math.Abs(f.Mass[idx]-sumF(f, idx)) > 1e-12 {
		t.Fatalf("expected mass seeded from own distribution, got %v", f.Mass[idx])
	}
}

func TestReiniLiquidToLGAwayFromGasUnchanged(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.Liquid, field.Liquid}
	p := testParams()

	ReiniLiquidToLG(f, p)

	for i, ph := range f.Phase {
		if ph != field.Liquid {
			t.Fatalf("cell %d: expected LIQUID unchanged with no GAS neighbor, got %v", i, ph)
		}
	}
}

func TestAdhocStepCollapsesAllGasSideToGas(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 3, Nz: 3}
	f := field.New(g)
	for i := range f.Phase {
		f.Phase[i] = field.Gas
	}
	center := g.Index(1, 1, 1)
	f.Phase[center] = field.LG
	p := testParams()

	AdhocStep(f, p)

	if f.Phase[center] != field.Gas {
		t.Fatalf("expected LG cell fully surrounded by GAS to collapse to GAS, got %v", f.Phase[center])
	}
}

func TestAdhocStepCollapsesAllLiquidSideToLiquid(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 3, Nz: 3}
	f := field.New(g)
	for i := range f.Phase {
		f.Phase[i] = field.Liquid
	}
	center := g.Index(1, 1, 1)
	f.Phase[center] = field.LG
	p := testParams()

	AdhocStep(f, p)

	if f.Phase[center] != field.Liquid {
		t.Fatalf("expected LG cell fully surrounded by LIQUID to collapse to LIQUID, got %v", f.Phase[center])
	}
}

func TestTotalMassSumsLiquidAndLG(t *testing.T) {
	g := field.Grid{Nx: 2, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.LG}
	for q := range f.FAt(0) {
		f.FAt(0)[q] = 1.0 / 19.0
	}
	f.Mass[1] = 0.4

	total := TotalMass(f)
	want := sumF(f, 0) + 0.4
	if math.Abs(total-want) > 1e-12 {
		t.Fatalf("expected total mass %v, got %v", want, total)
	}
}

func TestFixupMassRedistributesEvenlyAcrossLG(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.LG, field.LG, field.Gas}
	f.Mass[0] = 0.2
	f.Mass[1] = 0.3

	FixupMass(f, 1.0)

	got := f.Mass[0] + f.Mass[1]
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected total LG mass to reach target 1.0, got %v", got)
	}
}

func TestFixupMassNoOpWhenNoLGCells(t *testing.T) {
	g := field.Grid{Nx: 1, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase[0] = field.Liquid
	f.Mass[0] = 0.5

	FixupMass(f, 99.0)

	if f.Mass[0] != 0.5 {
		t.Fatalf("expected mass untouched with no LG cells, got %v", f.Mass[0])
	}
}

func TestRefreshForOutputZeroesGasAndWall(t *testing.T) {
	g := field.Grid{Nx: 2, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Gas, field.Wall}
	for i := 0; i < g.Size(); i++ {
		for q := range f.FAt(i) {
			f.FAt(i)[q] = 5
		}
		for q := range f.HAt(i) {
			f.HAt(i)[q] = 5
		}
		f.Mass[i] = 5
	}

	RefreshForOutput(f)

	for i := 0; i < g.Size(); i++ {
		for q, v := range f.FAt(i) {
			if v != 0 {
				t.Fatalf("cell %d q %d: expected F zeroed, got %v", i, q, v)
			}
		}
		for q, v := range f.HAt(i) {
			if v != 0 {
				t.Fatalf("cell %d q %d: expected H zeroed, got %v", i, q, v)
			}
		}
		if f.Mass[i] != 0 {
			t.Fatalf("cell %d: expected mass zeroed, got %v", i, f.Mass[i])
		}
	}
}
