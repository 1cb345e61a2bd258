package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/predsim/internal/dynamo"
)

const (
	canvasWidth      = 36
	canvasHeight     = 14
	historyCapacity  = 600
	maxStepsPerFrame = 4096
	frameInterval    = time.Second / 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(60)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a Simulator from the Bubble Tea event loop. Each tick
// advances the run by stepsPerFrame steps until the horizon is reached.
type Model struct {
	sim           *dynamo.Simulator
	labels        dynamo.Labels
	stepsPerFrame int
	running       bool
	finished      bool
	theme         Theme
	canvas        *Canvas
	predHistory   []float64
	preyHistory   []float64
}

func NewModel(sim *dynamo.Simulator, labels dynamo.Labels, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	m := Model{
		sim:           sim,
		labels:        labels,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		theme:         Themes[0],
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		predHistory:   make([]float64, 0, historyCapacity),
		preyHistory:   make([]float64, 0, historyCapacity),
	}
	m.record()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsPerFrame)
		case "-", "_":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "r":
			m.reset()
		case "t":
			m.theme = nextTheme(m.theme)
		}
	case TickMsg:
		if m.running && !m.finished {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances up to stepsPerFrame times; Advance reporting false marks
// the run as finished.
func (m *Model) step() {
	for i := 0; i < m.stepsPerFrame; i++ {
		if !m.sim.Advance() {
			m.finished = true
			break
		}
	}
	m.record()
}

func (m *Model) record() {
	x := m.sim.State()
	m.predHistory = appendBounded(m.predHistory, x.Predators)
	m.preyHistory = appendBounded(m.preyHistory, x.Prey)
}

func appendBounded(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	m.sim.Reset()
	m.finished = false
	m.running = true
	m.predHistory = m.predHistory[:0]
	m.preyHistory = m.preyHistory[:0]
	m.record()
}

func (m Model) Status() string {
	switch {
	case m.finished:
		return "FINISHED"
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func (m Model) StepsPerFrame() int { return m.stepsPerFrame }
func (m Model) Finished() bool     { return m.finished }
func (m Model) Running() bool      { return m.running }
func (m Model) Theme() Theme       { return m.theme }

// drawPhase renders the recent history in the (prey, predators) plane.
func (m Model) drawPhase() string {
	m.canvas.Clear()
	if len(m.preyHistory) == 0 {
		return m.canvas.String()
	}
	minX, maxX := bounds(m.preyHistory)
	minY, maxY := bounds(m.predHistory)
	m.canvas.PlotPath(m.preyHistory, m.predHistory, minX, maxX, minY, maxY)
	return m.canvas.String()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func (m Model) View() string {
	x := m.sim.State()
	clock := m.sim.Clock()
	predStyle := lipgloss.NewStyle().Foreground(m.theme.Predator).Bold(true)
	preyStyle := lipgloss.NewStyle().Foreground(m.theme.Prey).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	if m.finished {
		statusStyle = statusStyle.Foreground(m.theme.Finished)
	}

	phaseTitle := fmt.Sprintf("%s vs %s", m.labels.Predator, m.labels.Prey)
	canvasView := canvasStyle.Render(statusStyle.Render(phaseTitle) + "\n" + m.drawPhase())

	var s strings.Builder
	s.WriteString(statusStyle.Render(m.Status()) + "\n\n")
	if len(m.preyHistory) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.preyHistory, m.predHistory},
			asciigraph.Height(8),
			asciigraph.Width(44),
			asciigraph.Caption(m.labels.Prey+" / "+m.labels.Predator),
		)
		s.WriteString(chart + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f / %g", clock.Time(), clock.RunTime())) + "\n")
	s.WriteString(labelStyle.Render(m.labels.Prey) + preyStyle.Render(fmt.Sprintf("%.4f", x.Prey)) + "\n")
	s.WriteString(labelStyle.Render(m.labels.Predator) + predStyle.Render(fmt.Sprintf("%.4f", x.Predators)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d steps/frame", m.stepsPerFrame)) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause +/-:Speed R:Reset T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
