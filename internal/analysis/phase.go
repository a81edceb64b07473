package analysis

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lwave/internal/dynamo"
)

// Portrait is the trajectory of two fields sampled at one grid index, e.g.
// E against H at a probe point.
type Portrait struct {
	XField, YField int
	Index          int
	X, Y           []float64
}

// ProbeSeries returns the value of one field at grid index i for every frame.
func ProbeSeries(frames []dynamo.Frame, field, i int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, fr := range frames {
		if field >= len(fr.Fields) || i < 0 || i >= len(fr.Fields[field]) {
			return out
		}
		out = append(out, fr.Fields[field][i])
	}
	return out
}

// ProbePortrait returns nil when either field is missing at index i.
func ProbePortrait(frames []dynamo.Frame, xField, yField, i int) *Portrait {
	xs := ProbeSeries(frames, xField, i)
	ys := ProbeSeries(frames, yField, i)
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil
	}
	return &Portrait{XField: xField, YField: yField, Index: i, X: xs, Y: ys}
}

// axis maps values onto n cells with a 10% margin on both sides.
type axis struct{ lo, span float64 }

func newAxis(v []float64) axis {
	finite := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return axis{lo: -1, span: 2}
	}
	lo, hi := floats.Min(finite), floats.Max(finite)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return axis{lo: lo - 0.1*span, span: 1.2 * span}
}

// cell returns -1 for values that cannot be placed.
func (a axis) cell(v float64, n int) int {
	if !a.contains(v) {
		return -1
	}
	return int((v - a.lo) / a.span * float64(n-1))
}

func (a axis) contains(v float64) bool { return v >= a.lo && v <= a.lo+a.span }

// ASCII draws the portrait with axes through the origin when visible.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.X) == 0 || width < 2 || height < 2 {
		return ""
	}
	ax, ay := newAxis(p.X), newAxis(p.Y)

	rows := make([][]rune, height)
	for r := range rows {
		rows[r] = []rune(strings.Repeat(" ", width))
	}
	if ax.contains(0) {
		col := ax.cell(0, width)
		for r := range rows {
			rows[r][col] = '│'
		}
	}
	if ay.contains(0) {
		row := height - 1 - ay.cell(0, height)
		for c := range rows[row] {
			rows[row][c] = '─'
		}
	}
	for k := range p.X {
		col, row := ax.cell(p.X[k], width), height-1-ay.cell(p.Y[k], height)
		if row >= 0 && row < height && col >= 0 && col < width {
			rows[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(string(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}
