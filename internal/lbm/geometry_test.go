package lbm

import (
	"math"
	"testing"

	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

func TestComputeGeometryGradientOfLinearRamp(t *testing.T) {
	g := field.Grid{Nx: 8, Ny: 8, Nz: 8}
	f := field.New(g)
	for x := 0; x < g.Nx; x++ {
		for y := 0; y < g.Ny; y++ {
			for z := 0; z < g.Nz; z++ {
				f.Vof[g.Index(x, y, z)] = float64(x)
			}
		}
	}

	phi := make([]lattice.Vec3, g.Size())
	kappa := make([]float64, g.Size())
	ComputeGeometry(f, phi, kappa)

	idx := g.Index(4, 4, 4)
	got := phi[idx]
	if math.Abs(got[0]-1) > 1e-9 {
		t.Fatalf("expected dvof/dx=1, got %v", got[0])
	}
	if math.Abs(got[1]) > 1e-9 || math.Abs(got[2]) > 1e-9 {
		t.Fatalf("expected zero gradient along y,z, got %v", got)
	}
}

func TestComputeGeometryFlatFieldHasZeroCurvature(t *testing.T) {
	g := field.Grid{Nx: 6, Ny: 6, Nz: 6}
	f := field.New(g)
	for i := range f.Vof {
		f.Vof[i] = 1
	}

	phi := make([]lattice.Vec3, g.Size())
	kappa := make([]float64, g.Size())
	ComputeGeometry(f, phi, kappa)

	idx := g.Index(3, 3, 3)
	if kappa[idx] != 0 {
		t.Fatalf("expected zero curvature on a flat field, got %v", kappa[idx])
	}
}

func TestComputeTGradUsesSelfForGasWallNeighbors(t *testing.T) {
	g := field.Grid{Nx: 3, Ny: 1, Nz: 1}
	f := field.New(g)
	f.Phase = []field.Phase{field.Liquid, field.Liquid, field.Gas}
	f.T = []float64{10, 20, 999}

	tgrad := make([]lattice.Vec3, g.Size())
	ComputeTGrad(f, tgrad)

	idx := g.Index(1, 0, 0)
	want := (f.T[idx] - f.T[g.Index(0, 0, 0)]) / 2
	if math.Abs(tgrad[idx][0]-want) > 1e-9 {
		t.Fatalf("expected GAS neighbor to be replaced by self T, got %v want %v", tgrad[idx][0], want)
	}
}
