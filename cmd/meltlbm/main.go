package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/meltlbm/internal/config"
	"github.com/san-kum/meltlbm/internal/experiment"
	"github.com/san-kum/meltlbm/internal/metrics"
	"github.com/san-kum/meltlbm/internal/optim"
	"github.com/san-kum/meltlbm/internal/sim"
	"github.com/san-kum/meltlbm/internal/storage"
	"github.com/san-kum/meltlbm/internal/tui"
)

var (
	dataDir    string
	configFile string
	scenario   string
	live       bool
)

// main is the entry point for the meltlbm CLI: it registers the
// run/scenarios/calibrate/inspect subcommands and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "meltlbm",
		Short: "thermal-hydrodynamic lattice Boltzmann engine for laser powder-bed fusion",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".meltlbm", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario or a custom config and record the result",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&scenario, "scenario", "", "built-in scenario name (see 'meltlbm scenarios')")
	runCmd.Flags().StringVar(&configFile, "config", "", "custom config file path (yaml); overrides --scenario")
	runCmd.Flags().BoolVar(&live, "live", false, "show a live Bubble Tea progress display while running")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "sweep grid pitch and timestep for numerically stable relaxation times",
		RunE:  calibrate,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [run_id]",
		Short: "summarize a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "browse and run built-in scenarios in a full-screen menu",
		RunE:  func(cmd *cobra.Command, args []string) error { return tui.RunInteractive() },
	}

	rootCmd.AddCommand(runCmd, scenariosCmd, calibrateCmd, inspectCmd, listCmd, interactiveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildDriver() (*sim.Driver, string, int, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", 0, fmt.Errorf("failed to load config: %w", err)
		}
		totalSteps := cfg.OutputInterval * 10
		d, err := buildFromConfig(cfg, totalSteps)
		return d, "custom", totalSteps, err
	}

	if scenario == "" {
		scenario = "quiescent"
	}
	registry := experiment.NewRegistry()
	d, err := registry.Get(scenario)
	if err != nil {
		return nil, "", 0, err
	}
	return d, scenario, d.TotalSteps(), nil
}

func buildFromConfig(cfg *config.Config, totalSteps int) (*sim.Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return experiment.BuildCustom(cfg, totalSteps)
}

func runScenario(cmd *cobra.Command, args []string) error {
	d, label, totalSteps, err := buildDriver()
	if err != nil {
		return err
	}
	if totalSteps == 0 {
		totalSteps = 100
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	run, err := st.NewRun(label, totalSteps, 1)
	if err != nil {
		return err
	}

	massDrift := metrics.NewMassDrift()
	maxTemp := metrics.NewMaxTemperature()
	sink := multiSink{run: run, ms: []metrics.Metric{massDrift, maxTemp}}

	fmt.Printf("running scenario %q...\n", label)
	start := time.Now()

	if live {
		if err := runWithLiveView(d, label, totalSteps, sink); err != nil {
			return err
		}
	} else {
		if err := d.Run(context.Background(), sink); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	if err := run.Close(map[string]float64{
		"mass_drift":      massDrift.Value(),
		"max_temperature": maxTemp.Value(),
	}); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("mass_drift: %.3e\n", massDrift.Value())
	fmt.Printf("max_temperature: %.1fK\n", maxTemp.Value())
	return nil
}

// multiSink fans a snapshot out to a storage run and any number of
// metrics so a single drive loop feeds recording and diagnostics at
// once.
type multiSink struct {
	run *storage.Run
	ms  []metrics.Metric
}

func (m multiSink) Emit(s sim.Snapshot) error {
	for _, metric := range m.ms {
		metric.Observe(s)
	}
	return m.run.Emit(s)
}

func runWithLiveView(d *sim.Driver, label string, totalSteps int, sink sim.Sink) error {
	model := tui.NewModel(label, totalSteps)
	p := tea.NewProgram(model)

	teaSink := tui.RunSink{Program: p}
	combined := fanoutSink{sinks: []sim.Sink{sink, teaSink}}

	errCh := make(chan error, 1)
	go func() {
		err := d.Run(context.Background(), combined)
		p.Send(tui.DoneMsg{Err: err})
		errCh <- err
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return <-errCh
}

type fanoutSink struct {
	sinks []sim.Sink
}

func (f fanoutSink) Emit(s sim.Snapshot) error {
	for _, sink := range f.sinks {
		if err := sink.Emit(s); err != nil {
			return err
		}
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	for _, name := range registry.List() {
		fmt.Println(name)
	}
	return nil
}

func calibrate(cmd *cobra.Command, args []string) error {
	base := config.DefaultConfig()
	g := optim.NewGridSearch(
		[]string{"h", "dt"},
		[][]float64{
			{10e-6, 20e-6, 40e-6},
			{2.5e-8, 5e-8, 1e-7, 2e-7},
		},
	)

	apply := func(cfg *config.Config, params map[string]float64) {
		cfg.H = params["h"]
		cfg.Dt = params["dt"]
	}

	candidates, best := g.Search(base, apply)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "H\tDT\tTAU_NU\tTAU_A_L\tTAU_A_S\tSTABLE")
	for _, c := range candidates {
		fmt.Fprintf(w, "%.2e\t%.2e\t%.4f\t%.4f\t%.4f\t%v\n",
			c.Params["h"], c.Params["dt"], c.Warning.TauNu, c.Warning.TauAlphaLiquid, c.Warning.TauAlphaSolid, c.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: h=%.2e dt=%.2e (stable=%v)\n", best.Params["h"], best.Params["dt"], best.Stable)
	return nil
}

func inspectRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("snapshots: %d\n", meta.Snapshots)
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	cells, err := st.LoadCells(runID)
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		return nil
	}

	steps := make([]int, 0, len(cells))
	for step := range cells {
		steps = append(steps, step)
	}
	sort.Ints(steps)

	temps := make([]float64, 0, len(steps))
	for _, step := range steps {
		peak := 0.0
		for _, r := range cells[step] {
			if r.Temperature > peak {
				peak = r.Temperature
			}
		}
		temps = append(temps, peak)
	}

	graph := asciigraph.Plot(temps,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("peak temperature per recorded snapshot"),
	)
	fmt.Println()
	fmt.Println(graph)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIMESTAMP\tSNAPSHOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", run.ID, run.Scenario, run.Timestamp.Format("2006-01-02 15:04:05"), run.Snapshots)
	}
	return w.Flush()
}
