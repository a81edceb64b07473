package dynamo

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Field holds one quantity sampled at every grid point.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// IsFinite reports whether no entry is NaN or Inf.
func (f Field) IsFinite() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f Field) SumSquares() float64 {
	return floats.Dot(f, f)
}

// Frame is one history entry: every field at a single instant.
type Frame struct {
	Step   int
	Time   float64
	Fields []Field
}

func (fr Frame) Clone() Frame {
	fields := make([]Field, len(fr.Fields))
	for i, f := range fr.Fields {
		fields[i] = f.Clone()
	}
	return Frame{Step: fr.Step, Time: fr.Time, Fields: fields}
}

// Points returns the grid size of the frame, or 0 if it holds no fields.
func (fr Frame) Points() int {
	if len(fr.Fields) == 0 {
		return 0
	}
	return len(fr.Fields[0])
}

type BoundaryMode uint8

const (
	Fixed BoundaryMode = iota
	Periodic
)

func (m BoundaryMode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", uint8(m))
	}
}

// ParseBoundaryMode accepts "fixed"/"periodic" and the legacy "1"/"0" selector.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "dirichlet", "1":
		return Fixed, nil
	case "periodic", "wrap", "0":
		return Periodic, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownBoundary)
}

func (m BoundaryMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *BoundaryMode) UnmarshalText(b []byte) error {
	parsed, err := ParseBoundaryMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(fr Frame)
	Value() float64
	Reset()
}

// Observer is notified after every recorded frame.
type Observer interface {
	OnFrame(fr Frame)
}
