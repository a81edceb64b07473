package metrics

import (
	"math"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Edge records the largest |value - target| found in the outer Width points
// of any field. For fixed boundaries it should stay 0 after step 0.
type Edge struct {
	name   string
	width  int
	target float64
	skip   int
	seen   int
	max    float64
}

// NewEdge watches width points per side; the first skip frames are ignored.
func NewEdge(width int, target float64, skip int) *Edge {
	return &Edge{name: "edge_deviation", width: width, target: target, skip: skip}
}

func (e *Edge) Name() string { return e.name }

func (e *Edge) Observe(fr dynamo.Frame) {
	e.seen++
	if e.seen <= e.skip {
		return
	}
	for _, f := range fr.Fields {
		n := len(f)
		for k := 0; k < e.width && k < n; k++ {
			e.max = math.Max(e.max, math.Abs(f[k]-e.target))
			e.max = math.Max(e.max, math.Abs(f[n-1-k]-e.target))
		}
	}
}

func (e *Edge) Value() float64 { return e.max }

func (e *Edge) Reset() {
	e.seen = 0
	e.max = 0
}
