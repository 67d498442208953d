// Package tui renders a run's progress live in the terminal using
// Bubble Tea.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/meltlbm/internal/metrics"
	"github.com/san-kum/meltlbm/internal/sim"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	frameStyle = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())
)

// StepMsg reports a completed snapshot to the running program.
type StepMsg struct {
	Snapshot sim.Snapshot
}

// DoneMsg signals the run finished, successfully or not.
type DoneMsg struct {
	Err error
}

// Model is a Bubble Tea model tracking a run's live progress.
type Model struct {
	scenario    string
	totalSteps  int
	step        int
	elapsed     time.Duration
	started     time.Time
	massDrift   *metrics.MassDrift
	maxTemp     *metrics.MaxTemperature
	err         error
	done        bool
}

// NewModel builds a live progress model for a run of totalSteps over
// the named scenario.
func NewModel(scenario string, totalSteps int) Model {
	return Model{
		scenario:   scenario,
		totalSteps: totalSteps,
		massDrift:  metrics.NewMassDrift(),
		maxTemp:    metrics.NewMaxTemperature(),
		started:    time.Now(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StepMsg:
		m.step = msg.Snapshot.Step
		m.massDrift.Observe(msg.Snapshot)
		m.maxTemp.Observe(msg.Snapshot)
		m.elapsed = time.Since(m.started)
		return m, nil
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	frac := 0.0
	if m.totalSteps > 0 {
		frac = float64(m.step) / float64(m.totalSteps)
	}
	const barWidth = 30
	filled := int(frac * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := barStyle.Render(repeat("#", filled)) + repeat(".", barWidth-filled)

	body := fmt.Sprintf(
		"%s %s\n[%s] %s\n%s %s  %s %s  %s %s\n",
		labelStyle.Render("scenario:"), valueStyle.Render(m.scenario),
		bar, valueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.totalSteps)),
		labelStyle.Render("elapsed:"), valueStyle.Render(m.elapsed.Round(time.Millisecond).String()),
		labelStyle.Render("max_t:"), valueStyle.Render(fmt.Sprintf("%.1fK", m.maxTemp.Value())),
		labelStyle.Render("mass_drift:"), valueStyle.Render(fmt.Sprintf("%.3e", m.massDrift.Value())),
	)

	if m.done {
		if m.err != nil {
			body += fmt.Sprintf("\n%s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("run failed: "+m.err.Error()))
		} else {
			body += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("run complete") + "\n"
		}
	}

	return frameStyle.Render(body)
}

// MassDriftValue and MaxTemperatureValue expose the model's running
// metrics once the run ends.
func (m Model) MassDriftValue() float64      { return m.massDrift.Value() }
func (m Model) MaxTemperatureValue() float64 { return m.maxTemp.Value() }

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// RunSink adapts a tea.Program into a sim.Sink, forwarding each
// snapshot as a StepMsg.
type RunSink struct {
	Program *tea.Program
}

func (s RunSink) Emit(snap sim.Snapshot) error {
	s.Program.Send(StepMsg{Snapshot: snap})
	return nil
}
