// Package lattice defines the D3Q19 velocity set shared by every LB
// kernel: the discrete velocity directions, their quadrature weights, the
// opposite-direction (bounce-back) index, and the lattice speed of sound.
package lattice

// Vec3 is a physical or lattice-unit 3-vector.
type Vec3 [3]float64

// N is the number of discrete velocities in the D3Q19 set.
const N = 19

// Cs2 is the lattice speed of sound squared, cs^2 = 1/3.
const Cs2 = 1.0 / 3.0

// Vels holds the 19 discrete velocity offsets, Vels[q] = (ex, ey, ez).
// Index 0 is the rest particle; indices 1..18 pair up under Rev.
var Vels = [N][3]int{
	{0, 0, 0},
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
	{1, 1, 0}, {-1, -1, 0},
	{1, -1, 0}, {-1, 1, 0},
	{1, 0, 1}, {-1, 0, -1},
	{-1, 0, 1}, {1, 0, -1},
	{0, 1, 1}, {0, -1, -1},
	{0, 1, -1}, {0, -1, 1},
}

// Weights holds the D3Q19 quadrature weight for each velocity; they sum to 1.
var Weights = [N]float64{
	1.0 / 3.0,
	1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0,
	1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
	1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
}

// Rev maps each velocity index to the index of its opposite direction.
var Rev = [N]int{0, 2, 1, 4, 3, 6, 5, 8, 7, 10, 9, 12, 11, 14, 13, 16, 15, 18, 17}

// Dot returns e_q . v for velocity index q.
func Dot(q int, v Vec3) float64 {
	e := Vels[q]
	return float64(e[0])*v[0] + float64(e[1])*v[1] + float64(e[2])*v[2]
}
