// Package initial samples closed-form pulse shapes onto a grid to build the
// state at time 0, and the extra start level needed by three-level schemes.
package initial

import "math"

// Shape is a closed-form initial profile with its spatial derivative.
type Shape interface {
	Value(x float64) float64
	Slope(x float64) float64
}

// Gaussian is exp(-(x-x0)^2 / (2 sigma^2)).
type Gaussian struct {
	Center float64
	Sigma  float64
}

func (g Gaussian) Value(x float64) float64 {
	d := x - g.Center
	return math.Exp(-0.5 * d * d / (g.Sigma * g.Sigma))
}

func (g Gaussian) Slope(x float64) float64 {
	return -(x - g.Center) / (g.Sigma * g.Sigma) * g.Value(x)
}

// NarrowGaussian is exp(-(x-center)^2 / width), the unit-domain pulse.
type NarrowGaussian struct {
	Center float64
	Width  float64
}

func (g NarrowGaussian) Value(x float64) float64 {
	d := x - g.Center
	return math.Exp(-d * d / g.Width)
}

func (g NarrowGaussian) Slope(x float64) float64 {
	return -2 * (x - g.Center) / g.Width * g.Value(x)
}

// Direction is the travel direction of the seeded pulse.
type Direction float64

const (
	Rightward Direction = 1
	Leftward  Direction = -1
)

func ParseDirection(s string) Direction {
	if s == "left" || s == "leftward" {
		return Leftward
	}
	return Rightward
}

func (d Direction) String() string {
	if d == Leftward {
		return "left"
	}
	return "right"
}
