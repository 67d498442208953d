package lbm

import (
	"math"

	"github.com/san-kum/meltlbm/internal/compute"
	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

// ComputeRho reduces f.F into f.Rho: rho(x) = sum_q f_q(x).
func ComputeRho(f *field.Fields) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		sum := 0.0
		for _, v := range f.FAt(i) {
			sum += v
		}
		f.Rho[i] = sum
	})
}

// ComputeEnthalpy reduces f.H into f.Enthalpy: enthalpy(x) = sum_q h_q(x).
func ComputeEnthalpy(f *field.Fields) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		sum := 0.0
		for _, v := range f.HAt(i) {
			sum += v
		}
		f.Enthalpy[i] = sum
	})
}

// ComputeT maps f.Enthalpy into f.T using the piecewise enthalpy-temperature
// law (spec section 3): below enthalpy_s, linear in 1/Cp; between
// enthalpy_s and enthalpy_l, the mushy-zone plateau; above enthalpy_l,
// linear in 1/Cp offset from T_liquidus.
func ComputeT(f *field.Fields, p Params) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		f.T[i] = TemperatureOf(f.Enthalpy[i], p)
	})
}

// TemperatureOf evaluates the enthalpy-temperature law for a single value.
func TemperatureOf(enthalpy float64, p Params) float64 {
	switch {
	case enthalpy < p.EnthalpyS:
		return enthalpy / p.HeatCapacity
	case enthalpy < p.EnthalpyL:
		return p.TSolidus + (enthalpy-p.EnthalpyS)/(p.EnthalpyL-p.EnthalpyS)*(p.TLiquidus-p.TSolidus)
	default:
		return p.TLiquidus + (enthalpy-p.EnthalpyL)/p.HeatCapacity
	}
}

// ComputeVof maps (rho, phase, mass) into f.Vof (spec section 3).
func ComputeVof(f *field.Fields, p Params) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		switch f.Phase[i] {
		case field.Liquid:
			f.Vof[i] = f.Rho[i]
		case field.LG:
			f.Vof[i] = f.Mass[i]
		case field.Gas:
			f.Vof[i] = 0
		case field.Wall:
			f.Vof[i] = p.Rho0
		}
	})
}

// ComputeU fills f.U from the momentum distribution with the Guo half-step
// force correction, zeroing u where rho is zero (vacuum) or T < T_solidus
// (solid freeze), per spec section 4.5.
func ComputeU(f *field.Fields, p Params, source []lattice.Vec3) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		rho := f.Rho[i]
		if rho == 0 {
			f.U[i] = lattice.Vec3{}
			return
		}
		fv := f.FAt(i)
		var mom lattice.Vec3
		for q := 0; q < lattice.N; q++ {
			e := lattice.Vels[q]
			mom[0] += fv[q] * float64(e[0])
			mom[1] += fv[q] * float64(e[1])
			mom[2] += fv[q] * float64(e[2])
		}
		src := source[i]
		u := lattice.Vec3{
			(mom[0] + p.M*src[0]) / rho,
			(mom[1] + p.M*src[1]) / rho,
			(mom[2] + p.M*src[2]) / rho,
		}
		if f.T[i] < p.TSolidus {
			u = lattice.Vec3{}
		}
		f.U[i] = u
	})
}

// finiteOr0 returns v if it is finite, else 0 — the spec's blanket
// non-finite coercion for normals, curvature and the recoil-pressure factor.
func finiteOr0(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
