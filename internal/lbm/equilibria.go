package lbm

import "github.com/san-kum/meltlbm/internal/lattice"

// EquilF returns the momentum equilibrium distribution for velocity q
// at the given density and velocity (spec section 4.4).
func EquilF(q int, rho float64, u lattice.Vec3) float64 {
	velDotU := lattice.Dot(q, u)
	uSq := u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
	return lattice.Weights[q] * rho * (1 +
		velDotU/lattice.Cs2 +
		velDotU*velDotU/(2*lattice.Cs2*lattice.Cs2) -
		uSq/(2*lattice.Cs2))
}

// EquilH returns the enthalpy equilibrium distribution for velocity q at
// the given enthalpy, temperature, and velocity. The q=0 split ensures
// sum_q EquilH(q, H, T, u) == H exactly (spec section 4.4).
func EquilH(q int, enthalpy, T float64, u lattice.Vec3, cp float64) float64 {
	velDotU := lattice.Dot(q, u)
	uSq := u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
	result := lattice.Weights[q] * cp * T * (1 +
		velDotU/lattice.Cs2 +
		velDotU*velDotU/(2*lattice.Cs2*lattice.Cs2) -
		uSq/(2*lattice.Cs2))
	if q == 0 {
		return enthalpy - cp*T + lattice.Weights[0]*cp*T*(1-uSq/(2*lattice.Cs2))
	}
	return result
}

// ForcingF returns the Guo momentum forcing projection onto velocity q
// for body/source force volumeForce, under relaxation time tauNu.
func ForcingF(q int, u lattice.Vec3, volumeForce lattice.Vec3, tauNu float64) float64 {
	e := lattice.Vels[q]
	ev := lattice.Vec3{float64(e[0]), float64(e[1]), float64(e[2])}
	eDotU := lattice.Dot(q, u)

	term := lattice.Vec3{
		(ev[0]-u[0])/lattice.Cs2 + eDotU/(lattice.Cs2*lattice.Cs2)*ev[0],
		(ev[1]-u[1])/lattice.Cs2 + eDotU/(lattice.Cs2*lattice.Cs2)*ev[1],
		(ev[2]-u[2])/lattice.Cs2 + eDotU/(lattice.Cs2*lattice.Cs2)*ev[2],
	}
	dot := term[0]*volumeForce[0] + term[1]*volumeForce[1] + term[2]*volumeForce[2]
	return (1 - 1/(2*tauNu)) * lattice.Weights[q] * dot
}

// ForcingH returns the enthalpy forcing projection onto velocity q for
// the per-cell volumetric heat source rate volumePower at density rho.
func ForcingH(q int, volumePower, rho float64) float64 {
	return volumePower / rho * lattice.Weights[q]
}
