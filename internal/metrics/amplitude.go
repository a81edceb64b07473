package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Amplitude records the largest absolute value any field reaches.
type Amplitude struct {
	name string
	max  float64
}

func NewAmplitude() *Amplitude {
	return &Amplitude{name: "max_amplitude"}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(fr dynamo.Frame) {
	for _, f := range fr.Fields {
		if len(f) == 0 {
			continue
		}
		a.max = math.Max(a.max, math.Max(floats.Max(f), -floats.Min(f)))
	}
}

func (a *Amplitude) Value() float64 { return a.max }

func (a *Amplitude) Reset() { a.max = 0 }
