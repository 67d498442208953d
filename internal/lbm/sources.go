package lbm

import (
	"math"

	"github.com/san-kum/meltlbm/internal/compute"
	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

// LaserSample is one materialized laser-path sample in lattice-length
// units: current beam center (x, y) and the segment's on/off power
// switch, as produced by package laserpath.
type LaserSample struct {
	X, Y, Power float64
}

// ComputeMomentumSource fills source with the per-cell momentum source
// term: gravity + surface tension + Marangoni shear + recoil pressure
// (spec section 4.7).
func ComputeMomentumSource(f *field.Fields, p Params, phi []lattice.Vec3, kappa []float64, tgradField []lattice.Vec3, source []lattice.Vec3) {
	n := f.Grid.Size()
	g := p.Gravity3()
	compute.ParallelFor(n, func(i int) {
		rho := f.Rho[i]
		phiVec := phi[i]
		vof := f.Vof[i]
		T := f.T[i]

		gravity := lattice.Vec3{rho * g[0], rho * g[1], rho * g[2]}

		kv := kappa[i]
		st := lattice.Vec3{p.STCoeff * kv * phiVec[0], p.STCoeff * kv * phiVec[1], p.STCoeff * kv * phiVec[2]}

		mag := math.Sqrt(phiVec[0]*phiVec[0] + phiVec[1]*phiVec[1] + phiVec[2]*phiVec[2])
		normal := lattice.Vec3{finiteOr0(phiVec[0] / mag), finiteOr0(phiVec[1] / mag), finiteOr0(phiVec[2] / mag)}

		tgrad := tgradField[i]
		nDotT := normal[0]*tgrad[0] + normal[1]*tgrad[1] + normal[2]*tgrad[2]
		marScale := p.STGradCoeff * mag * 2 * vof
		maran := lattice.Vec3{
			marScale * (tgrad[0] - nDotT*normal[0]),
			marScale * (tgrad[1] - nDotT*normal[1]),
			marScale * (tgrad[2] - nDotT*normal[2]),
		}

		recoilScalar := finiteOr0(p.RPCoeff * p.PAtm * math.Exp(p.LatentHeatEvap*p.M0*(T-p.TEvap)/(p.GasConstant*T*p.TEvap)))
		recoil := lattice.Vec3{recoilScalar * phiVec[0], recoilScalar * phiVec[1], recoilScalar * phiVec[2]}

		source[i] = lattice.Vec3{
			gravity[0] + st[0] + maran[0] + recoil[0],
			gravity[1] + st[1] + maran[1] + recoil[1],
			gravity[2] + st[2] + maran[2] + recoil[2],
		}
	})
}

// ComputeHeatSource fills source with the per-cell volumetric heat source
// rate: Gaussian laser flux projected onto the free surface, plus
// convective and radiative loss (spec section 4.7).
func ComputeHeatSource(f *field.Fields, p Params, phi []lattice.Vec3, laser LaserSample, source []float64) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		T := f.T[i]
		vof := f.Vof[i]
		phiVec := phi[i]
		centroid := f.Centroid[i]

		qLaser := laser.Power * 2 * p.LaserPower * p.AbsorbedFraction / (math.Pi * p.BeamSize * p.BeamSize) *
			math.Exp(-2*((centroid[0]-laser.X)*(centroid[0]-laser.X)+(centroid[1]-laser.Y)*(centroid[1]-laser.Y))/(p.BeamSize*p.BeamSize))

		proj := -phiVec[2]
		if proj < 0 {
			proj = 0
		}

		mag := math.Sqrt(phiVec[0]*phiVec[0] + phiVec[1]*phiVec[1] + phiVec[2]*phiVec[2])
		qLoss := mag * (p.HConv*(p.T0-T) + p.StefanBoltzmann*p.Emissivity*(p.T0*p.T0*p.T0*p.T0-T*T*T*T)) * 2 * vof

		source[i] = proj*qLaser*2*vof + qLoss
	})
}
