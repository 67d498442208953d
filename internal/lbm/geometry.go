package lbm

import (
	"math"

	"github.com/san-kum/meltlbm/internal/compute"
	"github.com/san-kum/meltlbm/internal/field"
	"github.com/san-kum/meltlbm/internal/lattice"
)

// tangentialAxes returns the two axes orthogonal to summedAxis, in the
// order the height-function formulas differentiate along (spec section
// 4.6: axis 0 -> (y,z), axis 1 -> (x,z), axis 2 -> (x,y)).
func tangentialAxes(summedAxis int) (a, b int) {
	switch summedAxis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func axisOffset(summedAxis, a, b, co, ta, tb int) (dx, dy, dz int) {
	var d [3]int
	d[summedAxis] = co
	d[a] = ta
	d[b] = tb
	return d[0], d[1], d[2]
}

// heightFunction sums vof along a 7-cell column centered on idx in
// direction summedAxis, for each of the 3x3 tangential offsets, producing
// the height map used by curvature's finite-difference formula.
func heightFunction(g field.Grid, vof []float64, idx, summedAxis int) [3][3]float64 {
	a, b := tangentialAxes(summedAxis)
	var hgt [3][3]float64
	for ta := -1; ta <= 1; ta++ {
		for tb := -1; tb <= 1; tb++ {
			sum := 0.0
			for co := -3; co <= 3; co++ {
				dx, dy, dz := axisOffset(summedAxis, a, b, co, ta, tb)
				sum += vof[g.Neighbor(idx, dx, dy, dz)]
			}
			hgt[ta+1][tb+1] = sum
		}
	}
	return hgt
}

// curvatureFromHeight evaluates spec section 4.6's curvature formula on a
// 3x3 height map, coercing non-finite results to 0.
func curvatureFromHeight(hgt [3][3]float64) float64 {
	const h = 1.0
	Hx := (hgt[2][1] - hgt[0][1]) / (2 * h)
	Hy := (hgt[1][2] - hgt[1][0]) / (2 * h)
	Hxx := (hgt[2][1] - 2*hgt[1][1] + hgt[0][1]) / (h * h)
	Hyy := (hgt[1][2] - 2*hgt[1][1] + hgt[1][0]) / (h * h)
	Hxy := (hgt[2][2] - hgt[0][2] - hgt[2][0] + hgt[0][0]) / (4 * h)

	num := Hxx + Hyy + Hxx*Hy*Hy + Hyy*Hx*Hx - 2*Hxy*Hx*Hy
	den := math.Pow(1+Hx*Hx+Hy*Hy, 1.5)
	kappa := -num / den
	if math.IsNaN(kappa) || math.IsInf(kappa, 0) {
		return 0
	}
	return kappa
}

// gradVof computes the central-difference gradient of vof at idx over the
// 3x3x3 stencil.
func gradVof(g field.Grid, vof []float64, idx int) lattice.Vec3 {
	const h = 1.0
	return lattice.Vec3{
		(vof[g.Neighbor(idx, 1, 0, 0)] - vof[g.Neighbor(idx, -1, 0, 0)]) / (2 * h),
		(vof[g.Neighbor(idx, 0, 1, 0)] - vof[g.Neighbor(idx, 0, -1, 0)]) / (2 * h),
		(vof[g.Neighbor(idx, 0, 0, 1)] - vof[g.Neighbor(idx, 0, 0, -1)]) / (2 * h),
	}
}

// ComputeGeometry fills phi (gradient of vof) and kappa (curvature) for
// every cell, selecting the height-function axis most aligned with the
// local vof gradient (spec section 4.6).
func ComputeGeometry(f *field.Fields, phi []lattice.Vec3, kappa []float64) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		p := gradVof(f.Grid, f.Vof, i)
		phi[i] = p

		ax, ay, az := math.Abs(p[0]), math.Abs(p[1]), math.Abs(p[2])
		var axis int
		switch {
		case ax >= ay && ax >= az:
			axis = 0
		case ay >= ax && ay >= az:
			axis = 1
		default:
			axis = 2
		}
		hgt := heightFunction(f.Grid, f.Vof, i, axis)
		kappa[i] = curvatureFromHeight(hgt)
	})
}

// ComputeTGrad fills tgrad with the central-difference gradient of T,
// replacing any GAS/WALL neighbor with the cell's own T before
// differencing (spec section 4.6).
func ComputeTGrad(f *field.Fields, tgrad []lattice.Vec3) {
	n := f.Grid.Size()
	compute.ParallelFor(n, func(i int) {
		self := f.T[i]
		tAt := func(dx, dy, dz int) float64 {
			nb := f.Grid.Neighbor(i, dx, dy, dz)
			if f.Phase[nb] == field.Gas || f.Phase[nb] == field.Wall {
				return self
			}
			return f.T[nb]
		}
		const h = 1.0
		tgrad[i] = lattice.Vec3{
			(tAt(1, 0, 0) - tAt(-1, 0, 0)) / (2 * h),
			(tAt(0, 1, 0) - tAt(0, -1, 0)) / (2 * h),
			(tAt(0, 0, 1) - tAt(0, 0, -1)) / (2 * h),
		}
	})
}
