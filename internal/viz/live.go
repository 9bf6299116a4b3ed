package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/analysis"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/sim"
)

const (
	historyCapacity = 600
	barWidth        = 30
	ticksPerSecond  = 30
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model animates one continuous-time trajectory: the occupied state, the
// time-weighted occupancy estimate it accumulates, and how far that
// estimate sits from the stationary distribution.
type Model struct {
	chain *markov.Chain
	jc    *sim.JumpChain
	rnd   sim.RandSource

	state    int
	t        float64
	holdEnd  float64
	dt       float64
	occupied []float64

	pi        map[string]float64
	tvHistory []float64

	running  bool
	showHelp bool
	jumps    int
}

// NewModel prepares the live view. dt is simulated seconds per frame; pi
// may be nil when the chain has no stationary distribution.
func NewModel(chain *markov.Chain, rnd sim.RandSource, dt float64, pi map[string]float64) Model {
	m := Model{
		chain:    chain,
		jc:       sim.BuildJumpChain(chain),
		rnd:      rnd,
		dt:       dt,
		occupied: make([]float64, chain.NumStates()),
		pi:       pi,
		running:  true,
	}
	m.restart()
	return m
}

func (m *Model) restart() {
	m.state = sim.SampleInitialState(m.chain, m.rnd)
	m.t = 0
	m.jumps = 0
	for i := range m.occupied {
		m.occupied[i] = 0
	}
	m.tvHistory = m.tvHistory[:0]
	m.scheduleJump()
}

// scheduleJump draws the next holding time; absorbing states never jump.
func (m *Model) scheduleJump() {
	rate := m.jc.Exit[m.state]
	if rate == 0 {
		m.holdEnd = math.Inf(1)
		return
	}
	m.holdEnd = m.t - math.Log(m.rnd())/rate
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/ticksPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

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
		case "+", "=":
			m.dt *= 1.25
		case "-", "_":
			m.dt /= 1.25
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/ticksPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances simulated time by dt, crossing as many jumps as fall
// inside the frame and crediting occupancy time to each visited state.
func (m *Model) step() {
	frameEnd := m.t + m.dt
	for m.holdEnd <= frameEnd {
		m.occupied[m.state] += m.holdEnd - m.t
		m.t = m.holdEnd
		m.state = m.nextState()
		m.jumps++
		m.scheduleJump()
	}
	m.occupied[m.state] += frameEnd - m.t
	m.t = frameEnd

	if m.pi != nil && m.t > 0 {
		empirical := make([]float64, len(m.occupied))
		target := make([]float64, len(m.occupied))
		for i, name := range m.chain.States {
			empirical[i] = m.occupied[i] / m.t
			target[i] = m.pi[name]
		}
		m.tvHistory = append(m.tvHistory, analysis.TotalVariation(empirical, target))
		if len(m.tvHistory) > historyCapacity {
			m.tvHistory = m.tvHistory[1:]
		}
	}
}

func (m *Model) nextState() int {
	u := m.rnd() * m.jc.Exit[m.state]
	targets, cum := m.jc.Targets[m.state], m.jc.Cum[m.state]
	for k, threshold := range cum {
		if u < threshold {
			return targets[k]
		}
	}
	return targets[len(targets)-1]
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("CTMC LIVE") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if math.IsInf(m.holdEnd, 1) && m.jc.Exit[m.state] == 0 {
		status += " (absorbed)"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Jumps") + valueStyle.Render(fmt.Sprintf("%d", m.jumps)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.3fs/frame", m.dt)) + "\n\n")

	s.WriteString("OCCUPANCY\n")
	for i, name := range m.chain.States {
		frac := 0.0
		if m.t > 0 {
			frac = m.occupied[i] / m.t
		}
		filled := int(frac * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-10s %s %.3f", name, bar, frac)
		if m.pi != nil {
			line += fmt.Sprintf("  (pi %.3f)", m.pi[name])
		}
		if i == m.state {
			s.WriteString(currentStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if len(m.tvHistory) > 1 {
		chart := asciigraph.Plot(m.tvHistory,
			asciigraph.Height(4),
			asciigraph.Width(40),
			asciigraph.Caption("TV distance to stationary"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("\nSpace: pause  R: restart  +/-: speed  Q: quit"))
	} else {
		s.WriteString(helpStyle.Render("\nSP:Pause R:Restart +/-:Speed Q:Quit ?:Help"))
	}
	return s.String()
}
