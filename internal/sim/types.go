package sim

import (
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
)

type Config struct {
	Steps      int
	Boundary   dynamo.BoundaryMode
	FixedValue float64
	Direction  initial.Direction
}

// Result is the complete history of a run, one frame per step plus step 0.
type Result struct {
	Scheme     string
	FieldNames []string
	Grid       *grid.Grid
	Params     grid.Params
	Boundary   dynamo.BoundaryMode
	Frames     []dynamo.Frame
	Metrics    map[string]float64
	Warnings   []string
}

// Field returns the named field of frame n.
func (r *Result) Field(n int, name string) (dynamo.Field, bool) {
	if n < 0 || n >= len(r.Frames) {
		return nil, false
	}
	for i, fn := range r.FieldNames {
		if fn == name {
			return r.Frames[n].Fields[i], true
		}
	}
	return nil, false
}

func (r *Result) Times() []float64 {
	t := make([]float64, len(r.Frames))
	for i, fr := range r.Frames {
		t[i] = fr.Time
	}
	return t
}
