package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

type runState int

const (
	stateRunning runState = iota
	statePaused
	stateFailed
)

var stateColors = map[runState]lipgloss.Color{
	stateRunning: "#00ff88",
	statePaused:  "#ffaa00",
	stateFailed:  "#ff4444",
}

func badge(s runState, text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(stateColors[s]).Render(text)
}

func panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Padding(1, 2)
}

func hint(text string) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true).Render(text)
}

// blend mixes two hex colors in Lab space; t=0 gives from.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return to
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// GradientText colors each rune of text along a gradient.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(blend(from, to, t)).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders a fraction in [0, 1] of the run.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	bar := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(strings.Repeat("█", filled))
	return bar + lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(strings.Repeat("░", width-filled))
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// SparklineChart draws values as one line of block characters, sampling down
// to width and shading from the muted to the primary theme color. Diverged
// samples are marked with "!".
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(0, width))
	}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if inRange(v) {
			finite = append(finite, v)
		}
	}
	lo, hi := 0.0, 1.0
	if len(finite) > 0 {
		lo, hi = floats.Min(finite), floats.Max(finite)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stride := max(1, len(values)/width)

	var b strings.Builder
	for i := 0; i < width && i*stride < len(values); i++ {
		v := values[i*stride]
		if !inRange(v) {
			b.WriteString(badge(stateFailed, "!"))
			continue
		}
		norm := (v - lo) / span
		level := max(0, min(len(sparkLevels)-1, int(norm*float64(len(sparkLevels)-1))))
		color := blend(CurrentTheme.Muted, CurrentTheme.Primary, norm)
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(sparkLevels[level])))
	}
	return b.String()
}
