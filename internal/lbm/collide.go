package lbm

import (
	"github.com/san-kum/meltlbm/internal/compute"
	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

// CollideF performs BGK relaxation of the momentum distribution with Guo
// forcing, writing the result into newF. GAS/WALL cells are zeroed. Cells
// with T below solidus freeze to the rest-state distribution w*rho,
// preventing solid flow (spec section 4.8).
func CollideF(f *field.Fields, p Params, source []lattice.Vec3, newF []float64) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		out := newF[i*lattice.N : i*lattice.N+lattice.N]
		if f.Phase[i] == field.Gas || f.Phase[i] == field.Wall {
			for q := range out {
				out[q] = 0
			}
			return
		}

		rho := f.Rho[i]
		u := f.U[i]
		T := f.T[i]
		src := source[i]
		fv := f.FAt(i)

		if T < p.TSolidus {
			for q := 0; q < lattice.N; q++ {
				out[q] = lattice.Weights[q] * rho
			}
			return
		}

		for q := 0; q < lattice.N; q++ {
			eq := EquilF(q, rho, u)
			forcing := ForcingF(q, u, src, p.TauNu)
			out[q] = fv[q] + (eq-fv[q])/p.TauNu + forcing*1 /* dt=1 */
		}
	})
}

// CollideH performs BGK relaxation of the enthalpy distribution with the
// heat-source forcing, writing the result into newH. GAS/WALL cells are
// zeroed. The relaxation time switches between liquid and solid thermal
// diffusivity at T_solidus (spec section 4.8).
func CollideH(f *field.Fields, p Params, heatSource []float64, newH []float64) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		out := newH[i*lattice.N : i*lattice.N+lattice.N]
		if f.Phase[i] == field.Gas || f.Phase[i] == field.Wall {
			for q := range out {
				out[q] = 0
			}
			return
		}

		enthalpy := f.Enthalpy[i]
		T := f.T[i]
		rho := f.Rho[i]
		u := f.U[i]
		hv := f.HAt(i)

		tauAlpha := p.TauAlphaLiquid
		if T < p.TSolidus {
			tauAlpha = p.TauAlphaSolid
		}

		for q := 0; q < lattice.N; q++ {
			eq := EquilH(q, enthalpy, T, u, p.HeatCapacity)
			forcing := ForcingH(q, heatSource[i], rho)
			out[q] = hv[q] + (eq-hv[q])/tauAlpha + forcing*1 /* dt=1 */
		}
	})
}
