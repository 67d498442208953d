// Package optim sweeps grid parameters to locate configurations whose
// lattice relaxation times land in the numerically stable range.
package optim

import (
	"math"

	"github.com/san-kum/meltlbm/internal/config"
	"github.com/san-kum/meltlbm/internal/lbm"
)

// GridSearch enumerates every combination of paramNames x ranges,
// applying each combination to a base config via a caller-supplied
// setter.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(paramNames []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: paramNames, ranges: ranges}
}

// Candidate is one evaluated point of the sweep.
type Candidate struct {
	Params  map[string]float64
	Warning config.StabilityWarning
	Stable  bool
	Score   float64 // distance of the relaxation times from the 0.75 stability midpoint; lower is better
}

// tauScore measures how centered the three relaxation times are in
// [0.5, 1], penalizing points outside the range heavily so a stable
// candidate always outscores an unstable one.
func tauScore(p lbm.Params) float64 {
	center := 0.75
	d := func(tau float64) float64 {
		penalty := 0.0
		if tau < 0.5 || tau > 1.0 {
			penalty = 10
		}
		return penalty + math.Abs(tau-center)
	}
	return d(p.TauNu) + d(p.TauAlphaLiquid) + d(p.TauAlphaSolid)
}

// Search evaluates every grid point, applying params to a fresh config
// via apply, and returns all candidates plus the best one found.
func (g *GridSearch) Search(base *config.Config, apply func(cfg *config.Config, params map[string]float64)) ([]Candidate, Candidate) {
	var candidates []Candidate
	g.searchRecursive(base, apply, 0, make(map[string]float64), &candidates)

	best := Candidate{Score: math.Inf(1)}
	for _, c := range candidates {
		if c.Score < best.Score {
			best = c
		}
	}
	return candidates, best
}

func (g *GridSearch) searchRecursive(base *config.Config, apply func(*config.Config, map[string]float64), depth int, current map[string]float64, out *[]Candidate) {
	if depth == len(g.paramNames) {
		cfg := *base
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		apply(&cfg, params)

		if err := cfg.Validate(); err != nil {
			return
		}

		p := cfg.ToParams()
		warning, ok := config.CheckStability(p)
		*out = append(*out, Candidate{
			Params:  params,
			Warning: warning,
			Stable:  ok,
			Score:   tauScore(p),
		})
		return
	}

	name := g.paramNames[depth]
	for _, v := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, vv := range current {
			next[k] = vv
		}
		next[name] = v
		g.searchRecursive(base, apply, depth+1, next, out)
	}
}
