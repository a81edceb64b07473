package stencil

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
)

// Advection integrates dE/dt = -c dE/dx.
type Advection struct {
	flux  float64
	kappa float64
}

func NewAdvection(p grid.Params) *Advection {
	return &Advection{
		flux:  p.C * p.Dt / (2 * p.H),
		kappa: diffusion(p),
	}
}

func (s *Advection) Name() string     { return "advection" }
func (s *Advection) Fields() []string { return []string{"E"} }
func (s *Advection) Levels() int      { return 2 }
func (s *Advection) Reach() int       { return 1 }

func (s *Advection) Seed(g *grid.Grid, sh initial.Shape, _ initial.Direction, levels [][]dynamo.Field) {
	copy(levels[0][0], initial.Profile(g, sh))
}

func (s *Advection) Update(next, curr, _ []dynamo.Field, lo, hi int) {
	E, En := curr[0], next[0]
	lo, hi = clamp(lo, hi, len(E), 1)

	for i := lo; i < hi; i++ {
		En[i] = E[i] - s.flux*(E[i+1]-E[i-1]) + s.kappa*(E[i+1]-2*E[i]+E[i-1])
	}
}
