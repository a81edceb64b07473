package stencil

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
)

// Dispersive is the second-order-in-time wave scheme with a fourth-difference
// correction. It keeps three time levels.
type Dispersive struct {
	l2  float64
	l4h float64
	c   float64
	dt  float64
}

func NewDispersive(p grid.Params) *Dispersive {
	l2 := p.Lambda * p.Lambda
	return &Dispersive{
		l2:  l2,
		l4h: 0.5 * l2 * l2,
		c:   p.C,
		dt:  p.Dt,
	}
}

func (s *Dispersive) Name() string     { return "dispersive" }
func (s *Dispersive) Fields() []string { return []string{"u"} }
func (s *Dispersive) Levels() int      { return 3 }
func (s *Dispersive) Reach() int       { return 2 }

// Seed samples level 0 and derives level 1 with a single Taylor step.
func (s *Dispersive) Seed(g *grid.Grid, sh initial.Shape, dir initial.Direction, levels [][]dynamo.Field) {
	copy(levels[0][0], initial.Profile(g, sh))
	initial.TaylorStart(levels[1][0], levels[0][0], g, sh, s.c, s.dt, dir)
}

func (s *Dispersive) Update(next, curr, prev []dynamo.Field, lo, hi int) {
	u, up, un := curr[0], prev[0], next[0]
	lo, hi = clamp(lo, hi, len(u), 2)

	for j := lo; j < hi; j++ {
		d2 := u[j+1] - 2*u[j] + u[j-1]
		d4 := u[j+2] - 4*u[j+1] + 6*u[j] - 4*u[j-1] + u[j-2]
		un[j] = 2.0*u[j] - up[j] + s.l2*d2 + s.l4h*d4
	}
}
