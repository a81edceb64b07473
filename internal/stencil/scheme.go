package stencil

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
)

// Scheme advances a field set by one step on the interior.
type Scheme interface {
	Name() string
	// Fields names the quantities in buffer order.
	Fields() []string
	// Levels is the number of time levels held at once (2 or 3).
	Levels() int
	// Reach is the stencil half-width: 1 for 3-point, 2 for 5-point.
	Reach() int
	// Seed fills the first Levels()-1 time levels from the initial shape.
	Seed(g *grid.Grid, s initial.Shape, dir initial.Direction, levels [][]dynamo.Field)
	// Update writes next[.][lo:hi] from curr (and prev for three-level schemes).
	Update(next, curr, prev []dynamo.Field, lo, hi int)
}

// Interior returns the widest index range a scheme may update on n points.
func Interior(s Scheme, n int) (lo, hi int) {
	return s.Reach(), n - s.Reach()
}

// MinPoints is the smallest grid that leaves at least one interior point.
func MinPoints(s Scheme) int {
	return 2*s.Reach() + 1
}

func clamp(lo, hi, n, reach int) (int, int) {
	if lo < reach {
		lo = reach
	}
	if hi > n-reach {
		hi = n - reach
	}
	return lo, hi
}

// diffusion is the shared Lax-Wendroff correction (c dt)^2 / (2 h^2).
func diffusion(p grid.Params) float64 {
	cdt := p.C * p.Dt
	return cdt * cdt / (2 * p.H * p.H)
}
