package stencil

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
)

// Maxwell integrates the 1-D transverse pair dE/dt = -dH/dx, dH/dt = -dE/dx
// in units where the wave speed scales both fluxes.
type Maxwell struct {
	flux  float64
	kappa float64
}

func NewMaxwell(p grid.Params) *Maxwell {
	return &Maxwell{
		flux:  p.C * p.Dt / (2 * p.H),
		kappa: diffusion(p),
	}
}

func (s *Maxwell) Name() string     { return "maxwell" }
func (s *Maxwell) Fields() []string { return []string{"E", "H"} }
func (s *Maxwell) Levels() int      { return 2 }
func (s *Maxwell) Reach() int       { return 1 }

// Seed starts E from the pulse with H at rest.
func (s *Maxwell) Seed(g *grid.Grid, sh initial.Shape, _ initial.Direction, levels [][]dynamo.Field) {
	lv := levels[0]
	copy(lv[0], initial.Profile(g, sh))
	for i := range lv[1] {
		lv[1][i] = 0
	}
}

func (s *Maxwell) Update(next, curr, _ []dynamo.Field, lo, hi int) {
	E, H := curr[0], curr[1]
	En, Hn := next[0], next[1]
	lo, hi = clamp(lo, hi, len(E), 1)

	for i := lo; i < hi; i++ {
		ip, im := i+1, i-1
		En[i] = E[i] - s.flux*(H[ip]-H[im]) + s.kappa*(E[ip]-2*E[i]+E[im])
		Hn[i] = H[i] - s.flux*(E[ip]-E[im]) + s.kappa*(H[ip]-2*H[i]+H[im])
	}
}
