// Package metrics tracks scalar diagnostics over a run's snapshot
// stream: mass-conservation drift and peak temperature.
package metrics

import "github.com/san-kum/meltlbm/internal/sim"

// Metric observes a run's snapshots one at a time and reports a
// running scalar value.
type Metric interface {
	Name() string
	Observe(s sim.Snapshot)
	Value() float64
	Reset()
}
