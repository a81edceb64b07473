package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Peak follows the grid index of the maximum of one field.
type Peak struct {
	name    string
	field   int
	indices []int
}

func NewPeak(field int) *Peak {
	return &Peak{name: "peak_index", field: field}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(fr dynamo.Frame) {
	if p.field >= len(fr.Fields) || len(fr.Fields[p.field]) == 0 {
		return
	}
	p.indices = append(p.indices, floats.MaxIdx(fr.Fields[p.field]))
}

// Value is the peak index of the latest frame, or -1 before any frame.
func (p *Peak) Value() float64 {
	if len(p.indices) == 0 {
		return -1
	}
	return float64(p.indices[len(p.indices)-1])
}

func (p *Peak) Indices() []int { return p.indices }

func (p *Peak) Reset() { p.indices = p.indices[:0] }
