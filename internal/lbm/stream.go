package lbm

import (
	"github.com/san-kum/meltlbm/internal/compute"
	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

// StreamF streams the post-collision momentum distribution collF into
// streamedF with phase-aware boundary conditions, and updates newMass
// from the interface mass flux accounting (spec section 4.9). GAS/WALL
// cells are zeroed in both outputs.
//
// For direction q, the streaming source is the neighbor at offset
// -e_q (i.e. the standard LB pull f_q(x,t+1) = f_q(x-e_q,t)): a WALL
// neighbor there triggers bounce-back from the cell's own reversed
// population; a GAS neighbor triggers atmospheric reconstruction at
// rho_g = rho0; otherwise the neighbor's own q-population is pulled in.
func StreamF(f *field.Fields, p Params, collF []float64, streamedF, newMass []float64) {
	n := f.Grid.Size()
	rhoG := p.Rho0
	compute.ParallelFor(n, func(i int) {
		out := streamedF[i*lattice.N : i*lattice.N+lattice.N]
		if f.Phase[i] == field.Gas || f.Phase[i] == field.Wall {
			for q := range out {
				out[q] = 0
			}
			newMass[i] = 0
			return
		}

		uSelf := f.U[i]
		selfColl := collF[i*lattice.N : i*lattice.N+lattice.N]

		for q := 0; q < lattice.N; q++ {
			revq := lattice.Rev[q]
			pullFrom := f.Grid.VelNeighbor(i, revq)
			switch f.Phase[pullFrom] {
			case field.Wall:
				out[q] = selfColl[revq]
			case field.Gas:
				out[q] = EquilF(revq, rhoG, uSelf) + EquilF(q, rhoG, uSelf) - selfColl[revq]
			default: // Liquid or LG
				nb := collF[pullFrom*lattice.N : pullFrom*lattice.N+lattice.N]
				out[q] = nb[q]
			}
		}

		if f.Phase[i] == field.Liquid {
			newMass[i] = f.Rho[i]
			return
		}

		// LG: accumulate per-face mass flux against the neighbor actually
		// adjacent to that face (offset +e_q, not the pull source).
		deltaM := 0.0
		for q := 0; q < lattice.N; q++ {
			faceNeighbor := f.Grid.VelNeighbor(i, q)
			revq := lattice.Rev[q]
			fOut := selfColl[q]
			switch f.Phase[faceNeighbor] {
			case field.Liquid:
				fIn := collF[faceNeighbor*lattice.N+revq]
				deltaM += fIn - fOut
			case field.LG:
				fIn := collF[faceNeighbor*lattice.N+revq]
				deltaM += (fIn - fOut) * (f.Vof[faceNeighbor] + f.Vof[i]) / 2
			}
		}
		newMass[i] = f.Mass[i] + deltaM
	})
}

// StreamH streams the post-collision enthalpy distribution collH into
// streamedH. GAS neighbors trigger bounce-back (no enthalpy flux across
// the free surface); WALL neighbors supply an isothermal-wall
// equilibrium population at T0 (spec section 4.9).
func StreamH(f *field.Fields, p Params, collH []float64, streamedH []float64) {
	n := f.Grid.Size()
	wallH := [lattice.N]float64{}
	for q := 0; q < lattice.N; q++ {
		wallH[q] = EquilH(q, p.T0*p.HeatCapacity, p.T0, lattice.Vec3{}, p.HeatCapacity)
	}

	compute.ParallelFor(n, func(i int) {
		out := streamedH[i*lattice.N : i*lattice.N+lattice.N]
		if f.Phase[i] == field.Gas || f.Phase[i] == field.Wall {
			for q := range out {
				out[q] = 0
			}
			return
		}

		selfColl := collH[i*lattice.N : i*lattice.N+lattice.N]
		for q := 0; q < lattice.N; q++ {
			revq := lattice.Rev[q]
			pullFrom := f.Grid.VelNeighbor(i, revq)
			switch f.Phase[pullFrom] {
			case field.Wall:
				out[q] = wallH[q]
			case field.Gas:
				out[q] = selfColl[revq]
			default:
				nb := collH[pullFrom*lattice.N : pullFrom*lattice.N+lattice.N]
				out[q] = nb[q]
			}
		}
	})
}
