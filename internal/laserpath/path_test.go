package laserpath

import (
	"math"
	"testing"
)

func TestSampleSingleSegmentEndpoints(t *testing.T) {
	wp := []Waypoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
	tr := Sample(wp, []float64{1}, 2.0, 0.5)

	if tr.Len() == 0 {
		t.Fatal("expected samples")
	}
	if tr.Xs[0] != 0 || tr.Ys[0] != 0 {
		t.Fatalf("expected first sample at origin, got (%v,%v)", tr.Xs[0], tr.Ys[0])
	}
	last := tr.Len() - 1
	if math.Abs(tr.Xs[last]-10) > 1e-9 {
		t.Fatalf("expected last sample x=10, got %v", tr.Xs[last])
	}
	for _, p := range tr.Ps {
		if p != 1 {
			t.Fatalf("expected constant power 1, got %v", p)
		}
	}
}

func TestSampleAdvancesByExactTravelTime(t *testing.T) {
	wp := []Waypoint{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 4}}
	tr := Sample(wp, []float64{1, 0}, 1.0, 0.3)

	firstSegLen := 5.0 // 3-4-5 triangle
	firstSegTime := firstSegLen / 1.0

	found := false
	for i, ts := range tr.Ts {
		if tr.Ps[i] == 0 {
			if ts < firstSegTime-1e-6 {
				t.Fatalf("second segment sample at t=%v starts before travel time %v elapsed", ts, firstSegTime)
			}
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a zero-power sample from the degenerate second segment")
	}
}

// TestSampleMatchesLiteralScenario5 reproduces the literal two-segment
// waypoint path (0,0)->(10,0)->(10,10) with v=1, dt=1,
// switch=[1.0, 0.5]: each 10-unit, 10-second segment samples at
// floor(travelTime/dt)+1 = 11 points, xs stepping 0->10 then holding at
// 10, ys holding at 0 then stepping 0->10, and ps 1.0 for the first 11
// samples and 0.5 for the next 11.
func TestSampleMatchesLiteralScenario5(t *testing.T) {
	wp := []Waypoint{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	tr := Sample(wp, []float64{1.0, 0.5}, 1.0, 1.0)

	if tr.Len() != 22 {
		t.Fatalf("expected 22 samples (11 per segment), got %d", tr.Len())
	}

	for k := 0; k <= 10; k++ {
		if math.Abs(tr.Ts[k]-float64(k)) > 1e-9 {
			t.Fatalf("segment 1 sample %d: expected t=%v, got %v", k, float64(k), tr.Ts[k])
		}
		if math.Abs(tr.Xs[k]-float64(k)) > 1e-9 {
			t.Fatalf("segment 1 sample %d: expected x=%v, got %v", k, float64(k), tr.Xs[k])
		}
		if tr.Ys[k] != 0 {
			t.Fatalf("segment 1 sample %d: expected y=0, got %v", k, tr.Ys[k])
		}
		if tr.Ps[k] != 1.0 {
			t.Fatalf("segment 1 sample %d: expected power 1.0, got %v", k, tr.Ps[k])
		}
	}

	for k := 0; k <= 10; k++ {
		idx := 11 + k
		if math.Abs(tr.Ts[idx]-(10+float64(k))) > 1e-9 {
			t.Fatalf("segment 2 sample %d: expected t=%v, got %v", k, 10+float64(k), tr.Ts[idx])
		}
		if math.Abs(tr.Xs[idx]-10) > 1e-9 {
			t.Fatalf("segment 2 sample %d: expected x=10, got %v", k, tr.Xs[idx])
		}
		if math.Abs(tr.Ys[idx]-float64(k)) > 1e-9 {
			t.Fatalf("segment 2 sample %d: expected y=%v, got %v", k, float64(k), tr.Ys[idx])
		}
		if tr.Ps[idx] != 0.5 {
			t.Fatalf("segment 2 sample %d: expected power 0.5, got %v", k, tr.Ps[idx])
		}
	}
}

func TestTraceAtScalesByLength(t *testing.T) {
	wp := []Waypoint{{X: 0, Y: 0}, {X: 4, Y: 0}}
	tr := Sample(wp, []float64{1}, 4.0, 1.0)

	x, _, p := tr.At(0, 2.0)
	if x != 0 {
		t.Fatalf("expected scaled x=0, got %v", x)
	}
	if p != 1 {
		t.Fatalf("expected power 1, got %v", p)
	}
}
