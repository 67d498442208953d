// Package laserpath samples a piecewise-linear scan path into a
// per-timestep beam position and on/off power trace.
package laserpath

import "math"

// Waypoint is one corner of the scan path, in physical length units.
type Waypoint struct {
	X, Y float64
}

// Trace holds the materialized per-timestep samples: Ts in physical
// time units, Xs/Ys in physical length units, Ps the dimensionless
// power switch for that timestep. All four slices have equal length.
type Trace struct {
	Ts []float64
	Xs []float64
	Ys []float64
	Ps []float64
}

// Sample walks the waypoint polyline at constant scanningVel, emitting
// one sample every dt of travel time per segment. Each segment's
// sample count is fixed by its own travel time (length/scanningVel);
// the next segment's start time advances by that exact travel time,
// not by the sum of its quantized sample spacings, so rounding within
// a segment never accumulates across segments. switches must have
// exactly len(waypoints)-1 entries, one on/off power level per segment.
func Sample(waypoints []Waypoint, switches []float64, scanningVel, dt float64) Trace {
	var trace Trace
	tPrev := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		x0, y0 := waypoints[i].X, waypoints[i].Y
		x1, y1 := waypoints[i+1].X, waypoints[i+1].Y
		dx, dy := x1-x0, y1-y0
		length := math.Sqrt(dx*dx + dy*dy)
		travelTime := length / scanningVel

		n := int(math.Ceil((travelTime + 1e-10) / dt))
		if n < 1 {
			n = 1
		}

		for k := 0; k < n; k++ {
			frac := 0.0
			if n > 1 {
				frac = float64(k) / float64(n-1)
			}
			trace.Ts = append(trace.Ts, tPrev+float64(k)*dt)
			trace.Xs = append(trace.Xs, x0+frac*dx)
			trace.Ys = append(trace.Ys, y0+frac*dy)
			trace.Ps = append(trace.Ps, switches[i])
		}
		tPrev += travelTime
	}
	return trace
}

// At returns the sample for timestep index i in lattice length units,
// dividing the physical X/Y by lengthScale. It panics if i is out of
// range, matching the driver's contract that the trace covers every
// step of the run up front.
func (t Trace) At(i int, lengthScale float64) (x, y, power float64) {
	return t.Xs[i] / lengthScale, t.Ys[i] / lengthScale, t.Ps[i]
}

// Len reports the number of materialized samples.
func (t Trace) Len() int { return len(t.Ts) }
