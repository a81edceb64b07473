package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Energy tracks the discrete energy proxy sum_i sum_f f_i^2 of every frame.
// Value reports the largest relative drift from the first frame.
type Energy struct {
	name     string
	series   []float64
	maxDrift float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy_drift"}
}

func (e *Energy) Name() string { return e.name }

// FrameEnergy is the energy proxy of one frame.
func FrameEnergy(fr dynamo.Frame) float64 {
	total := 0.0
	for _, f := range fr.Fields {
		total += floats.Dot(f, f)
	}
	return total
}

func (e *Energy) Observe(fr dynamo.Frame) {
	energy := FrameEnergy(fr)
	e.series = append(e.series, energy)

	initial := e.series[0]
	if initial != 0 {
		drift := math.Abs(energy-initial) / math.Abs(initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *Energy) Value() float64 {
	return e.maxDrift
}

// Series returns the per-frame energy in step order.
func (e *Energy) Series() []float64 {
	return e.series
}

func (e *Energy) Reset() {
	e.series = e.series[:0]
	e.maxDrift = 0
}
