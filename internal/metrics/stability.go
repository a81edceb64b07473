package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Stability is the fraction of frames that are finite with every field
// bounded by the threshold in max norm.
type Stability struct {
	name      string
	threshold float64
	frames    int
	bad       int
	firstBad  int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold, firstBad: -1}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(fr dynamo.Frame) {
	s.frames++
	if s.bounded(fr) {
		return
	}
	s.bad++
	if s.firstBad < 0 {
		s.firstBad = fr.Step
	}
}

func (s *Stability) bounded(fr dynamo.Frame) bool {
	for _, f := range fr.Fields {
		if !f.IsFinite() {
			return false
		}
		if len(f) > 0 && floats.Norm(f, math.Inf(1)) > s.threshold {
			return false
		}
	}
	return true
}

func (s *Stability) Value() float64 {
	if s.frames == 0 {
		return 1
	}
	return float64(s.frames-s.bad) / float64(s.frames)
}

// FirstUnstable returns the step of the first frame that failed, or -1.
func (s *Stability) FirstUnstable() int { return s.firstBad }

func (s *Stability) Reset() {
	s.frames, s.bad, s.firstBad = 0, 0, -1
}
