package initial

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
)

// Sample evaluates fn at every grid position.
func Sample(g *grid.Grid, fn func(x float64) float64) dynamo.Field {
	f := make(dynamo.Field, g.N())
	for i, x := range g.X {
		f[i] = fn(x)
	}
	return f
}

// Profile samples the shape itself.
func Profile(g *grid.Grid, s Shape) dynamo.Field {
	return Sample(g, s.Value)
}

// Gradient samples the shape's spatial derivative.
func Gradient(g *grid.Grid, s Shape) dynamo.Field {
	return Sample(g, s.Slope)
}

// Velocity samples du/dt = -dir*c*f'(x) for a one-directional traveling pulse.
func Velocity(g *grid.Grid, s Shape, c float64, dir Direction) dynamo.Field {
	k := -float64(dir) * c
	return Sample(g, func(x float64) float64 { return k * s.Slope(x) })
}

// TaylorStart writes the first time level from curr with one explicit Euler
// step along the traveling-wave derivative: next = curr + dt*du/dt.
func TaylorStart(next, curr dynamo.Field, g *grid.Grid, s Shape, c, dt float64, dir Direction) {
	rate := Velocity(g, s, c, dir)
	for i := range curr {
		next[i] = curr[i] + dt*rate[i]
	}
}
