package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colors the viewer chrome and, per field index, the plotted profiles.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Fields    []lipgloss.Color
	Plot      []asciigraph.AnsiColor
}

// Field returns the color of field i, cycling when a scheme has more fields
// than the theme.
func (t Theme) Field(i int) lipgloss.Color {
	return t.Fields[i%len(t.Fields)]
}

// PlotColors returns n asciigraph series colors.
func (t Theme) PlotColors(n int) []asciigraph.AnsiColor {
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = t.Plot[i%len(t.Plot)]
	}
	return out
}

var (
	ThemePhosphor = Theme{
		Name:      "phosphor",
		Primary:   lipgloss.Color("#00ff88"),
		Secondary: lipgloss.Color("#00ccff"),
		Muted:     lipgloss.Color("#446655"),
		Fields:    []lipgloss.Color{"#00ff88", "#00ccff", "#ff00ff"},
		Plot:      []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Cyan, asciigraph.Magenta},
	}

	// E in red and H in blue, as field plots are usually drawn.
	ThemeField = Theme{
		Name:      "field",
		Primary:   lipgloss.Color("#ff5555"),
		Secondary: lipgloss.Color("#5599ff"),
		Muted:     lipgloss.Color("#666677"),
		Fields:    []lipgloss.Color{"#ff5555", "#5599ff", "#ffcc00"},
		Plot:      []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Blue, asciigraph.Yellow},
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#aaaaaa"),
		Muted:     lipgloss.Color("#666666"),
		Fields:    []lipgloss.Color{"#ffffff", "#bbbbbb", "#888888"},
		Plot:      []asciigraph.AnsiColor{asciigraph.White, asciigraph.LightGray, asciigraph.Gray},
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Fields:    []lipgloss.Color{"#feca57", "#ff6b6b", "#ff9ff3"},
		Plot:      []asciigraph.AnsiColor{asciigraph.Yellow, asciigraph.Red, asciigraph.Magenta},
	}

	CurrentTheme = ThemePhosphor

	Themes = []Theme{ThemePhosphor, ThemeField, ThemeMono, ThemeSunset}
)

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePhosphor
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme switches to the theme after the current one.
func nextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}
