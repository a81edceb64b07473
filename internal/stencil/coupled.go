package stencil

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
)

const (
	fieldE = iota
	fieldV
	fieldW
)

// Coupled integrates dE/dt = v, dv/dt = c^2 dw/dx, dw/dt = dv/dx.
type Coupled struct {
	dt     float64
	kappa  float64
	vCoeff float64
	wCoeff float64
	c      float64
}

func NewCoupled(p grid.Params) *Coupled {
	return &Coupled{
		dt:     p.Dt,
		kappa:  diffusion(p),
		vCoeff: p.Dt * p.C * p.C / (2 * p.H),
		wCoeff: p.Dt / (2 * p.H),
		c:      p.C,
	}
}

func (s *Coupled) Name() string     { return "coupled" }
func (s *Coupled) Fields() []string { return []string{"E", "v", "w"} }
func (s *Coupled) Levels() int      { return 2 }
func (s *Coupled) Reach() int       { return 1 }

func (s *Coupled) Seed(g *grid.Grid, sh initial.Shape, dir initial.Direction, levels [][]dynamo.Field) {
	lv := levels[0]
	copy(lv[fieldE], initial.Profile(g, sh))
	copy(lv[fieldV], initial.Velocity(g, sh, s.c, dir))
	copy(lv[fieldW], initial.Gradient(g, sh))
}

func (s *Coupled) Update(next, curr, _ []dynamo.Field, lo, hi int) {
	E, v, w := curr[fieldE], curr[fieldV], curr[fieldW]
	En, vn, wn := next[fieldE], next[fieldV], next[fieldW]
	lo, hi = clamp(lo, hi, len(E), 1)

	for i := lo; i < hi; i++ {
		En[i] = E[i] + s.dt*v[i] + s.kappa*(E[i+1]-2*E[i]+E[i-1])
		vn[i] = v[i] + s.vCoeff*(w[i+1]-w[i-1]) + s.kappa*(v[i+1]-2*v[i]+v[i-1])
		wn[i] = w[i] + s.wCoeff*(v[i+1]-v[i-1]) + s.kappa*(w[i+1]-2*w[i]+w[i-1])
	}
}
