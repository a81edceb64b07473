package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/lwave/internal/dynamo"
)

// PeakLocation returns the position of the maximum of f, refined with a
// parabola through the three samples around the largest one.
func PeakLocation(x []float64, f dynamo.Field) float64 {
	if len(f) == 0 || len(x) != len(f) {
		return math.NaN()
	}
	i := floats.MaxIdx(f)
	if i == 0 || i == len(f)-1 {
		return x[i]
	}
	y0, y1, y2 := f[i-1], f[i], f[i+1]
	denom := y0 - 2*y1 + y2
	if denom == 0 {
		return x[i]
	}
	offset := 0.5 * (y0 - y2) / denom
	return x[i] + offset*(x[i+1]-x[i])
}

// Track returns the peak position of one field for every frame.
func Track(x []float64, frames []dynamo.Frame, field int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, fr := range frames {
		if field >= len(fr.Fields) {
			return out
		}
		out = append(out, PeakLocation(x, fr.Fields[field]))
	}
	return out
}

// Speed fits position = a + v*t by least squares and returns v.
func Speed(times, positions []float64) float64 {
	n := len(positions)
	if n < 2 || len(times) < n {
		return 0
	}
	_, v := stat.LinearRegression(times[:n], positions, nil, false)
	return v
}

// RMSDifference is the root-mean-square distance between two fields.
func RMSDifference(a, b dynamo.Field) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	return floats.Distance(a, b, 2) / math.Sqrt(float64(len(a)))
}
