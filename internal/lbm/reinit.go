package lbm

import (
	"github.com/san-kum/meltlbm/internal/compute"
	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

func sumF(f *field.Fields, i int) float64 {
	sum := 0.0
	for _, v := range f.FAt(i) {
		sum += v
	}
	return sum
}

// ReiniLGToLiquid promotes LG cells overfilled past (1+theta)*rho to
// LIQUID (spec section 4.10, pass 1).
func ReiniLGToLiquid(f *field.Fields, p Params) {
	n := f.Grid.Size()
	newPhase, _ := f.ClonePhaseMass()
	compute.ParallelFor(n, func(i int) {
		newPhase[i] = f.Phase[i]
		if f.Phase[i] != field.LG {
			return
		}
		rhoSelf := sumF(f, i)
		if f.Mass[i] > (1+p.Theta)*rhoSelf {
			newPhase[i] = field.Liquid
		}
	})
	copy(f.Phase, newPhase)
}

// ReiniGasToLG promotes GAS cells bordering LIQUID to LG, seeding
// their f/h distributions from the equilibria at rho, u, enthalpy and T
// averaged over the LIQUID and LG neighbors (spec section 4.10, pass 2). rho, u, enthalpy
// and T are the values computed at the top of the step, not recomputed
// from the streamed distributions.
func ReiniGasToLG(f *field.Fields, p Params) {
	n := f.Grid.Size()
	newF, newH := f.CloneFH()
	newPhase, newMass := f.ClonePhaseMass()

	compute.ParallelFor(n, func(i int) {
		fOut := newF[i*lattice.N : i*lattice.N+lattice.N]
		hOut := newH[i*lattice.N : i*lattice.N+lattice.N]
		copy(fOut, f.FAt(i))
		copy(hOut, f.HAt(i))
		newPhase[i] = f.Phase[i]
		newMass[i] = f.Mass[i]

		if f.Phase[i] != field.Gas {
			return
		}

		var rhoSum, enthalpySum, tSum, count float64
		var uSum lattice.Vec3
		hasLiquid := false
		for q := 1; q < lattice.N; q++ {
			nb := f.Grid.VelNeighbor(i, q)
			if f.Phase[nb] == field.Liquid {
				hasLiquid = true
			}
			if f.Phase[nb] != field.Liquid && f.Phase[nb] != field.LG {
				continue
			}
			rhoSum += f.Rho[nb]
			enthalpySum += f.Enthalpy[nb]
			tSum += f.T[nb]
			uSum[0] += f.U[nb][0]
			uSum[1] += f.U[nb][1]
			uSum[2] += f.U[nb][2]
			count++
		}
		if !hasLiquid {
			return
		}

		rhoAvg := rhoSum / count
		enthalpyAvg := enthalpySum / count
		tAvg := tSum / count
		uAvg := lattice.Vec3{uSum[0] / count, uSum[1] / count, uSum[2] / count}

		for q := 0; q < lattice.N; q++ {
			fOut[q] = EquilF(q, rhoAvg, uAvg)
			hOut[q] = EquilH(q, enthalpyAvg, tAvg, uAvg, p.HeatCapacity)
		}
		newPhase[i] = field.LG
		newMass[i] = 0
	})

	copy(f.F, newF)
	copy(f.H, newH)
	copy(f.Phase, newPhase)
	copy(f.Mass, newMass)
}

// ReiniLGToGas demotes LG cells that have fully drained past
// -theta*rho to GAS (spec section 4.10, pass 3).
func ReiniLGToGas(f *field.Fields, p Params) {
	n := f.Grid.Size()
	newPhase, _ := f.ClonePhaseMass()
	compute.ParallelFor(n, func(i int) {
		newPhase[i] = f.Phase[i]
		if f.Phase[i] != field.LG {
			return
		}
		rhoSelf := sumF(f, i)
		if f.Mass[i] < -p.Theta*rhoSelf {
			newPhase[i] = field.Gas
		}
	})
	copy(f.Phase, newPhase)
}

// ReiniLiquidToLG demotes LIQUID cells bordering GAS to LG, seeding
// mass with the cell's own density (spec section 4.10, pass 4).
func ReiniLiquidToLG(f *field.Fields, p Params) {
	n := f.Grid.Size()
	newPhase, newMass := f.ClonePhaseMass()
	compute.ParallelFor(n, func(i int) {
		newPhase[i] = f.Phase[i]
		newMass[i] = f.Mass[i]
		if f.Phase[i] != field.Liquid {
			return
		}
		hasGasNeighbor := false
		for q := 1; q < lattice.N; q++ {
			nb := f.Grid.VelNeighbor(i, q)
			if f.Phase[nb] == field.Gas {
				hasGasNeighbor = true
				break
			}
		}
		if hasGasNeighbor {
			newPhase[i] = field.LG
			newMass[i] = sumF(f, i)
		}
	})
	copy(f.Phase, newPhase)
	copy(f.Mass, newMass)
}

// AdhocStep cleans up LG cells fully enclosed by one side of the
// interface: all-GAS/WALL/LG neighborhoods collapse to GAS, all-
// LIQUID/WALL/LG neighborhoods collapse to LIQUID (spec section 4.10,
// pass 5).
func AdhocStep(f *field.Fields, p Params) {
	n := f.Grid.Size()
	newPhase, _ := f.ClonePhaseMass()
	compute.ParallelFor(n, func(i int) {
		newPhase[i] = f.Phase[i]
		if f.Phase[i] != field.LG {
			return
		}
		allGasSide := true
		allLiquidSide := true
		for q := 1; q < lattice.N; q++ {
			nb := f.Grid.VelNeighbor(i, q)
			ph := f.Phase[nb]
			if !(ph == field.Wall || ph == field.Gas || ph == field.LG) {
				allGasSide = false
			}
			if !(ph == field.Wall || ph == field.Liquid || ph == field.LG) {
				allLiquidSide = false
			}
		}
		switch {
		case allGasSide:
			newPhase[i] = field.Gas
		case allLiquidSide:
			newPhase[i] = field.Liquid
		}
	})
	copy(f.Phase, newPhase)
}

// TotalMass sums the conserved mass quantity over the grid: rho for
// LIQUID, the interface mass variable for LG, zero otherwise.
func TotalMass(f *field.Fields) float64 {
	total, _ := massAndLGCount(f)
	return total
}

func massAndLGCount(f *field.Fields) (total, countLG float64) {
	n := f.Grid.Size()
	for i := 0; i < n; i++ {
		switch f.Phase[i] {
		case field.Liquid:
			total += sumF(f, i)
		case field.LG:
			total += f.Mass[i]
			countLG++
		}
	}
	return total, countLG
}

// FixupMass redistributes the discrepancy between targetMass and the
// grid's current total mass evenly across every LG cell, correcting
// the drift the reinitialization passes introduce (spec section 4.10).
func FixupMass(f *field.Fields, targetMass float64) {
	calculated, countLG := massAndLGCount(f)
	if countLG == 0 {
		return
	}
	delta := (targetMass - calculated) / countLG
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		if f.Phase[i] == field.LG {
			f.Mass[i] += delta
		}
	})
}

// RefreshForOutput zeroes the f/h distributions and mass of every
// GAS/WALL cell, discarding the numerical residue bounce-back and
// atmospheric reconstruction leave behind (spec section 4.10).
func RefreshForOutput(f *field.Fields) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		if f.Phase[i] != field.Gas && f.Phase[i] != field.Wall {
			return
		}
		fOut := f.FAt(i)
		for q := range fOut {
			fOut[q] = 0
		}
		hOut := f.HAt(i)
		for q := range hOut {
			hOut[q] = 0
		}
		f.Mass[i] = 0
	})
}
