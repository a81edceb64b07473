package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type PickerItem struct {
	Name        string
	Description string
}

// Launcher builds the live viewer for a picked item.
type Launcher func(name string) (Model, error)

// Picker lists presets and hands the chosen one to a live Model. Esc in the
// viewer returns to the list.
type Picker struct {
	items  []PickerItem
	cursor int
	launch Launcher
	live   *Model
	err    error
}

func NewPicker(items []PickerItem, launch Launcher) Picker {
	return Picker{items: items, launch: launch}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			p.live = nil
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		m := next.(Model)
		p.live = &m
		return p, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch k.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) == 0 {
			return p, nil
		}
		m, err := p.launch(p.items[p.cursor].Name)
		if err != nil {
			p.err = err
			return p, nil
		}
		p.err = nil
		p.live = &m
		return p, m.Init()
	}
	return p, nil
}

// Selected returns the item under the cursor.
func (p Picker) Selected() (PickerItem, bool) {
	if len(p.items) == 0 {
		return PickerItem{}, false
	}
	return p.items[p.cursor], true
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}
	var s strings.Builder
	s.WriteString(GradientText("LAX-WENDROFF WAVES", CurrentTheme.Secondary, CurrentTheme.Primary) + "\n\n")
	for i, it := range p.items {
		line := it.Name
		if it.Description != "" {
			line += dim.Render("  " + it.Description)
		}
		if i == p.cursor {
			s.WriteString(cyan.Render("> ") + white.Render(line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + red.Render(p.err.Error()) + "\n")
	}
	s.WriteString("\n" + hint("↑↓:Select Enter:Run Esc:Back Q:Quit"))
	return panel().Render(s.String())
}

// RunInteractive blocks until the picker exits.
func RunInteractive(p Picker) error {
	prog := tea.NewProgram(p, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
