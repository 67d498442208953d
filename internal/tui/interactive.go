package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/meltlbm/internal/experiment"
	"github.com/san-kum/meltlbm/internal/metrics"
	"github.com/san-kum/meltlbm/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var scenarioInfo = map[string]string{
	"quiescent": "pool at rest, no forces",
	"conduction": "1-D slab conduction",
	"droplet":   "spherical droplet, curvature check",
	"agitated":  "oscillating body force",
	"freeze":    "pool starting below solidus",
}

type appState int

const (
	stateMenu appState = iota
	stateSim
)

// InteractiveApp is a Bubble Tea front-end over the scenario registry:
// a menu to pick a built-in scenario, then a live view of its run.
type InteractiveApp struct {
	state    appState
	cursor   int
	names    []string
	selected string

	driver    *sim.Driver
	massDrift *metrics.MassDrift
	maxTemp   *metrics.MaxTemperature
	history   []float64
	step      int
	total     int
	running   bool
	err       error

	snapshots chan sim.Snapshot
	done      chan error
}

// NewInteractiveApp returns an InteractiveApp listing every scenario
// in the registry.
func NewInteractiveApp() *InteractiveApp {
	names := experiment.NewRegistry().List()
	return &InteractiveApp{state: stateMenu, names: names}
}

func (a *InteractiveApp) Init() tea.Cmd { return nil }

type appSnapshotMsg sim.Snapshot
type appDoneMsg struct{ err error }

func waitForSnapshot(ch chan sim.Snapshot, done chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap, ok := <-ch:
			if !ok {
				return appDoneMsg{err: <-done}
			}
			return appSnapshotMsg(snap)
		case err := <-done:
			return appDoneMsg{err: err}
		}
	}
}

func (a *InteractiveApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case appSnapshotMsg:
		snap := sim.Snapshot(msg)
		a.step = snap.Step
		a.massDrift.Observe(snap)
		a.maxTemp.Observe(snap)
		a.history = append(a.history, a.maxTemp.Value())
		if len(a.history) > 60 {
			a.history = a.history[1:]
		}
		return a, waitForSnapshot(a.snapshots, a.done)
	case appDoneMsg:
		a.running = false
		a.err = msg.err
		return a, nil
	}
	return a, nil
}

func (a *InteractiveApp) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMenu:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.names)-1 {
				a.cursor++
			}
		case "enter", " ":
			a.selected = a.names[a.cursor]
			if err := a.launch(); err != nil {
				a.err = err
				return a, nil
			}
			a.state = stateSim
			return a, waitForSnapshot(a.snapshots, a.done)
		}
	case stateSim:
		switch msg.String() {
		case "q", "escape", "ctrl+c":
			a.state = stateMenu
			a.running = false
			return a, nil
		}
	}
	return a, nil
}

func (a *InteractiveApp) launch() error {
	registry := experiment.NewRegistry()
	d, err := registry.Get(a.selected)
	if err != nil {
		return err
	}

	a.driver = d
	a.massDrift = metrics.NewMassDrift()
	a.maxTemp = metrics.NewMaxTemperature()
	a.history = nil
	a.step = 0
	a.total = d.TotalSteps()
	a.running = true
	a.err = nil

	a.snapshots = make(chan sim.Snapshot, 8)
	a.done = make(chan error, 1)

	go func() {
		sink := channelSink{ch: a.snapshots}
		err := d.Run(context.Background(), sink)
		close(a.snapshots)
		a.done <- err
	}()

	return nil
}

// channelSink forwards snapshots onto a channel for the Bubble Tea
// event loop to pick up via waitForSnapshot.
type channelSink struct {
	ch chan sim.Snapshot
}

func (c channelSink) Emit(s sim.Snapshot) error {
	c.ch <- s
	return nil
}

func (a *InteractiveApp) View() string {
	switch a.state {
	case stateSim:
		return a.viewSim()
	default:
		return a.viewMenu()
	}
}

func (a *InteractiveApp) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("m e l t l b m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range a.names {
		desc := scenarioInfo[name]
		if i == a.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	if a.err != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(a.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter run   q quit") + "\n")
	return b.String()
}

func (a *InteractiveApp) viewSim() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if !a.running {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("done")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n", statusIcon, cyan.Render(a.selected), statusText))

	progress := 0.0
	if a.total > 0 {
		progress = float64(a.step) / float64(a.total)
	}
	if progress > 1 {
		progress = 1
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar, dim.Render(fmt.Sprintf("%d/%d", a.step, a.total))))

	if a.massDrift != nil {
		b.WriteString(fmt.Sprintf("   %s %.3e   %s %.1fK\n", dim.Render("mass_drift"), a.massDrift.Value(), dim.Render("max_t"), a.maxTemp.Value()))
	}

	if len(a.history) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("max_t"), cyan.Render(sparkline(a.history, 40))))
	}

	if a.err != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(a.err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("   q back to menu") + "\n")
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		v := data[i*step]
		idx := int((v - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// RunInteractive launches the full-screen scenario browser.
func RunInteractive() error {
	p := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
