package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lwave/internal/analysis"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/metrics"
	"github.com/san-kum/lwave/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	maxStepsPerTick = 64
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a run and draws one of its fields every tick.
type Model struct {
	run           *sim.Run
	title         string
	fieldNames    []string
	x             []float64
	steps         int
	width, height int
	canvas        *Canvas
	field         int
	stepsPerTick  int
	running       bool
	playHead      int
	energy        []float64
	yMin, yMax    float64
	showHelp      bool
	err           error
}

// NewModel starts s with cfg; title is shown in the header.
func NewModel(s *sim.Simulator, cfg sim.Config, title string) (Model, error) {
	run, err := s.Start(cfg)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		run:          run,
		title:        title,
		fieldNames:   s.Scheme().Fields(),
		x:            s.Grid().X,
		steps:        cfg.Steps,
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		stepsPerTick: 1,
		running:      true,
		playHead:     -1,
		energy:       make([]float64, 0, historyCapacity),
	}
	m.yMin, m.yMax = Bounds(run.Latest())
	for _, fr := range run.Frames() {
		m.observe(fr)
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the run.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.field = (m.field + 1) % len(m.fieldNames)
		case "+", "=":
			m.stepsPerTick = min(maxStepsPerTick, m.stepsPerTick*2)
		case "-", "_":
			m.stepsPerTick = max(1, m.stepsPerTick/2)
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			nextTheme()
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.advance()
			} else {
				m.playHead++
				if m.playHead >= len(m.run.Frames()) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for k := 0; k < m.stepsPerTick; k++ {
		if !m.run.Step() {
			m.running = false
			return
		}
		m.observe(m.run.Latest())
	}
}

func (m *Model) observe(fr dynamo.Frame) {
	m.energy = append(m.energy, metrics.FrameEnergy(fr))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// scrub moves the playback position through recorded frames.
func (m *Model) scrub(dir int) {
	frames := m.run.Frames()
	if m.playHead == -1 {
		if len(frames) == 0 {
			return
		}
		m.playHead = len(frames) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(frames) {
		m.playHead = -1
	}
}

func (m *Model) restart() {
	run, err := m.run.Restart()
	if err != nil {
		m.err = err
		return
	}
	m.run = run
	m.playHead = -1
	m.running = true
	m.energy = m.energy[:0]
	for _, fr := range run.Frames() {
		m.observe(fr)
	}
}

// Displayed returns the frame currently on screen.
func (m Model) Displayed() dynamo.Frame {
	frames := m.run.Frames()
	if m.playHead >= 0 && m.playHead < len(frames) {
		return frames[m.playHead]
	}
	return m.run.Latest()
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return badge(stateFailed, "ERROR "+m.err.Error())
	case m.playHead != -1 && m.running:
		return badge(statePaused, "REPLAYING")
	case m.playHead != -1:
		return badge(statePaused, "REPLAY PAUSED")
	case m.run.Done():
		return badge(stateRunning, "DONE")
	case !m.running:
		return badge(statePaused, "PAUSED")
	}
	return badge(stateRunning, "RUNNING")
}

// View renders the TUI interface.
func (m Model) View() string {
	fr := m.Displayed()
	m.canvas.Clear()
	if m.field < len(fr.Fields) {
		DrawProfile(m.canvas, fr.Fields[m.field], m.yMin, m.yMax)
	}
	canvasView := canvasStyle.Foreground(CurrentTheme.Field(m.field)).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(CurrentTheme.Primary).Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(ProgressBar(float64(fr.Step)/float64(max(1, m.steps)), 30) + "\n\n")

	if len(m.energy) > 1 {
		s.WriteString(graphStyle.Foreground(CurrentTheme.Secondary).Render(PlotSeries(m.energy, 30, 4, "Energy")) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d / %d", fr.Step, m.steps))
	row("Time", fmt.Sprintf("%.4g", fr.Time))
	row("Field", m.fieldNames[m.field])
	if m.field < len(fr.Fields) {
		row("Peak x", fmt.Sprintf("%.4g", analysis.PeakLocation(m.x, fr.Fields[m.field])))
	}
	if len(m.energy) > 0 {
		row("Energy", fmt.Sprintf("%.4g", m.energy[len(m.energy)-1]))
	}
	row("Speed", fmt.Sprintf("%dx", m.stepsPerTick))

	s.WriteString(helpStyle.Foreground(CurrentTheme.Muted).Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nTAB:Field +/-:Speed ?:Help\n[ ]:Scrub T:Theme"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from step 0      ║
║  Q        - Quit                     ║
║  Tab      - Cycle displayed field    ║
║  + / -    - Steps per tick           ║
║  [        - Scrub back               ║
║  ]        - Scrub forward            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive blocks until the viewer exits.
func RunLive(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
