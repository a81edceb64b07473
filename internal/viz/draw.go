package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lwave/internal/dynamo"
)

// DrawProfile plots f across the full canvas width with values in
// [yMin, yMax] mapped to the canvas height, plus the zero axis.
func DrawProfile(c *Canvas, f dynamo.Field, yMin, yMax float64) {
	n := len(f)
	if n < 2 || yMax <= yMin {
		return
	}
	cw, ch := c.Dots()
	toY := func(v float64) int {
		py := int(float64(ch-1) * (yMax - v) / (yMax - yMin))
		return max(0, min(ch-1, py))
	}

	if yMin < 0 && yMax > 0 {
		c.Dashed(toY(0), 2)
	}

	scaleX := float64(cw-1) / float64(n-1)
	prevX, prevY := 0, toY(f[0])
	for i := 1; i < n; i++ {
		px, py := int(float64(i)*scaleX), toY(f[i])
		c.DrawLine(prevX, prevY, px, py)
		prevX, prevY = px, py
	}
}

// Bounds returns a symmetric plotting range covering every field of fr.
func Bounds(fr dynamo.Frame) (float64, float64) {
	a := 0.0
	for _, f := range fr.Fields {
		for _, v := range f {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				a = math.Max(a, math.Abs(v))
			}
		}
	}
	if a == 0 {
		a = 1
	}
	return -1.1 * a, 1.1 * a
}

// PlotFrame renders the given fields of one frame as an asciigraph chart.
func PlotFrame(fields []dynamo.Field, width, height int, caption string) string {
	if len(fields) == 0 || len(fields[0]) == 0 {
		return ""
	}
	data := make([][]float64, len(fields))
	drawable := false
	for i, f := range fields {
		var ok bool
		data[i], ok = plottable(f)
		drawable = drawable || ok
	}
	if !drawable {
		return caption + " (no finite values)"
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(CurrentTheme.PlotColors(len(data))...),
	)
}

// PlotSeries renders a scalar time series such as the energy proxy.
func PlotSeries(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	data, ok := plottable(values)
	if !ok {
		return caption + " (no finite values)"
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// plotLimit bounds the magnitudes handed to asciigraph; anything larger has
// diverged.
const plotLimit = 1e100

func inRange(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= plotLimit
}

// plottable copies values with non-finite and diverged entries replaced by
// NaN, which asciigraph draws as gaps. ok is false when no entry is left.
func plottable(values []float64) (out []float64, ok bool) {
	out = make([]float64, len(values))
	for i, v := range values {
		if inRange(v) {
			out[i] = v
			ok = true
		} else {
			out[i] = math.NaN()
		}
	}
	return out, ok
}
