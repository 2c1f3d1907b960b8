// Package tui implements an interactive terminal session in which a
// Multi Mountains environment is driven from the keyboard
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samuelfneumann/multimountains/agent/policy"
	mm "github.com/samuelfneumann/multimountains/environment/classiccontrol/multimountains"
	"github.com/samuelfneumann/multimountains/render"
	ts "github.com/samuelfneumann/multimountains/timestep"
)

// Default plot size and frame rate
const (
	PlotWidth  int           = 72
	PlotHeight int           = 12
	TickRate   time.Duration = time.Second / 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg advances the environment by one step
type TickMsg time.Time

func tick(rate time.Duration) tea.Cmd {
	return tea.Tick(rate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is a bubbletea model owning a Multi Mountains environment. The
// environment is only stepped from Update.
type Model struct {
	env    *mm.Discrete
	keys   *policy.Keys
	policy *policy.Manual
	canvas *render.Terminal
	rate   time.Duration

	step     ts.TimeStep
	ret      float64
	episodes int
	err      error
}

// New returns a new Model driving env at the argument tick rate
func New(env *mm.Discrete, rate time.Duration) (*Model, error) {
	keys := policy.NewKeys()
	p, err := policy.NewManual(env.ActionSpec(), keys)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	canvas := render.NewTerminal(nil, PlotWidth, PlotHeight)
	env.SetCanvas(canvas)

	m := &Model{
		env:    env,
		keys:   keys,
		policy: p,
		canvas: canvas,
		rate:   rate,
	}
	if err := m.reset(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return m, nil
}

// Run starts an interactive session on env
func Run(env *mm.Discrete) error {
	m, err := New(env, TickRate)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init starts the tick loop
func (m *Model) Init() tea.Cmd {
	return tick(m.rate)
}

// Update handles key presses and steps the environment on each tick
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.err = m.reset()
		case "a", "left":
			m.keys.Press(policy.LeftKey)
		case "b", "right":
			m.keys.Press(policy.RightKey)
		}

	case TickMsg:
		if !m.step.Last() {
			m.err = m.advance()
		}
		return m, tick(m.rate)
	}
	return m, nil
}

// reset starts a new episode
func (m *Model) reset() error {
	step, err := m.env.Reset()
	if err != nil {
		return err
	}
	m.policy.ObserveFirst(step)
	m.step = step
	m.ret = 0
	return m.env.Render()
}

// advance takes a single step with the action selected by the keys
// pressed since the last step
func (m *Model) advance() error {
	action := m.policy.SelectAction(m.step)
	step, done, err := m.env.Step(action)
	if err != nil {
		return err
	}
	m.policy.Observe(action, step)

	m.step = step
	m.ret += step.Reward
	if done {
		m.episodes++
	}
	return m.env.Render()
}

// View renders the terrain, the car, and episode statistics
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Multi Mountains"))
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(m.canvas.Frame()))
	b.WriteString("\n")

	x, v := m.env.State()
	stats := [][2]string{
		{"step", fmt.Sprintf("%v", m.step.Number)},
		{"position", fmt.Sprintf("%.4f", x)},
		{"velocity", fmt.Sprintf("%+.4f", v)},
		{"return", fmt.Sprintf("%v", m.ret)},
		{"episodes", fmt.Sprintf("%v", m.episodes)},
	}
	for _, stat := range stats {
		b.WriteString(labelStyle.Render(stat[0]))
		b.WriteString(valueStyle.Render(stat[1]))
		b.WriteString("\n")
	}

	if m.step.Last() {
		b.WriteString(doneStyle.Render(fmt.Sprintf("Episode over: %v",
			m.step.EndType())))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("a/← push left  b/→ push right  " +
		"r reset  q quit"))
	return b.String()
}
