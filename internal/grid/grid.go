// Package grid derives the uniform spatial grid and the explicit-scheme
// parameters (h, dt, lambda) from a domain, a point count, a wave speed and a
// Courant number.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Spacing selects how the point count divides the domain.
type Spacing uint8

const (
	// Inclusive places points on both ends: h = (xmax-xmin)/(N-1).
	Inclusive Spacing = iota
	// Exclusive leaves xmax out of the grid: h = (xmax-xmin)/N.
	Exclusive
)

func (s Spacing) String() string {
	if s == Exclusive {
		return "exclusive"
	}
	return "inclusive"
}

func ParseSpacing(s string) (Spacing, error) {
	switch s {
	case "", "inclusive":
		return Inclusive, nil
	case "exclusive":
		return Exclusive, nil
	}
	return 0, dynamo.NewConfigError("spacing", s)
}

type Spec struct {
	XMin, XMax float64
	N          int
	Spacing    Spacing
	Speed      float64
	Courant    float64
}

// Grid is the immutable set of sample positions.
type Grid struct {
	X []float64
	H float64
}

func (g *Grid) N() int { return len(g.X) }

// Params are the scalar scheme parameters shared by every stencil.
type Params struct {
	C      float64
	H      float64
	Dt     float64
	Lambda float64
}

// Stability returns a warning when lambda >= 1, nil otherwise.
func (p Params) Stability() error {
	if p.Lambda >= 1 {
		return &dynamo.StabilityWarning{Lambda: p.Lambda}
	}
	return nil
}

// Time returns the simulated time of step n.
func (p Params) Time(n int) float64 { return float64(n) * p.Dt }

func New(spec Spec) (*Grid, Params, error) {
	if err := spec.validate(); err != nil {
		return nil, Params{}, err
	}

	span := spec.XMax - spec.XMin
	intervals := spec.N - 1
	if spec.Spacing == Exclusive {
		intervals = spec.N
	}
	h := span / float64(intervals)

	x := make([]float64, spec.N)
	floats.Span(x, spec.XMin, spec.XMin+h*float64(spec.N-1))

	dt := spec.Courant * h / spec.Speed
	p := Params{
		C:      spec.Speed,
		H:      h,
		Dt:     dt,
		Lambda: spec.Speed * dt / h,
	}
	return &Grid{X: x, H: h}, p, nil
}

func (spec Spec) validate() error {
	for _, in := range []struct {
		name string
		v    float64
	}{
		{"x_min", spec.XMin}, {"x_max", spec.XMax}, {"speed", spec.Speed}, {"courant", spec.Courant},
	} {
		if math.IsNaN(in.v) || math.IsInf(in.v, 0) {
			return dynamo.NewConfigError(in.name, in.v)
		}
	}
	if spec.N < 2 {
		return &dynamo.ConfigError{Field: "points", Value: spec.N, Wrapped: dynamo.ErrGridTooSmall}
	}
	if spec.XMax <= spec.XMin {
		return dynamo.NewConfigError("x_max", fmt.Sprintf("%g <= x_min %g", spec.XMax, spec.XMin))
	}
	if spec.Speed <= 0 {
		return dynamo.NewConfigError("speed", spec.Speed)
	}
	if spec.Courant <= 0 {
		return dynamo.NewConfigError("courant", spec.Courant)
	}
	return nil
}
