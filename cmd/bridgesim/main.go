package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/analysis"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/config"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/export"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/metrics"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/sim"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/store"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/viz"
)

var (
	dataDir    string
	dt         float64
	subSteps   int
	duration   float64
	gravityX   float64
	gravityY   float64
	alpha      float64
	beta       float64
	record     bool
	recordTime float64
	magnitude  float64
	configFile string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bridgesim",
		Short: "2d truss dynamics lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, []string{"warren"})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bridgesim", "data directory")
	addSimFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate a preset under gravity",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&record, "record", false, "record per-element stress history")
	runCmd.Flags().Float64Var(&recordTime, "record-time", 5.0, "recording duration")

	impulseCmd := &cobra.Command{
		Use:   "impulse [preset]",
		Short: "free-vibration impulse test",
		Args:  cobra.ExactArgs(1),
		RunE:  runImpulse,
	}
	addSimFlags(impulseCmd)
	impulseCmd.Flags().Float64Var(&magnitude, "magnitude", config.DefaultImpulse, "impulse magnitude (N*s)")

	reportCmd := &cobra.Command{
		Use:   "report [preset]",
		Short: "settle a preset and print the element table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	addSimFlags(reportCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a recorded series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset structures",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tNAME\tDESCRIPTION")
			for _, p := range config.Presets() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.Index, p.Name, p.Description)
			}
			return w.Flush()
		},
	}

	svgCmd := &cobra.Command{
		Use:   "svg [preset]",
		Short: "settle a preset and write an SVG snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runSVG,
	}
	addSimFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "bridge.svg", "output file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	rootCmd.AddCommand(runCmd, impulseCmd, reportCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, svgCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integration timestep")
	cmd.Flags().IntVar(&subSteps, "substeps", config.DefaultSubSteps, "integration steps per tick")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	cmd.Flags().Float64Var(&gravityX, "gravity-x", 0, "gravity x component")
	cmd.Flags().Float64Var(&gravityY, "gravity-y", config.DefaultGravityY, "gravity y component (down)")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "mass-proportional damping")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "stiffness-proportional damping")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// loadConfig folds a yaml config file under the CLI flags; explicitly set
// flags win.
func loadConfig(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("substeps") {
		subSteps = cfg.SubSteps
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("gravity-x") {
		gravityX = cfg.Gravity.X
	}
	if !cmd.Flags().Changed("gravity-y") {
		gravityY = cfg.Gravity.Y
	}
	if !cmd.Flags().Changed("alpha") {
		alpha = cfg.Damping.Alpha
	}
	if !cmd.Flags().Changed("beta") {
		beta = cfg.Damping.Beta
	}
	if f := cmd.Flags().Lookup("magnitude"); f != nil {
		if !f.Changed {
			magnitude = cfg.Impulse.Magnitude
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Impulse.Duration
		}
	}
	return nil
}

func simConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = dt
	cfg.SubSteps = subSteps
	cfg.Gravity.X = gravityX
	cfg.Gravity.Y = gravityY
	cfg.AlphaDamping = alpha
	cfg.BetaDamping = beta
	return cfg
}

func newSimulation(presetName string) (*sim.Simulation, *config.Preset, error) {
	p, err := config.PresetByName(presetName)
	if err != nil {
		return nil, nil, err
	}
	return sim.New(p.Build(), simConfig()), p, nil
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewPeakStressRatio(),
		metrics.NewKineticEnergy(),
		metrics.NewMaxDisplacement(),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	s, preset, err := newSimulation(args[0])
	if err != nil {
		return err
	}

	var captured *sim.Series
	if record {
		s.Recorder().SetSink(func(se sim.Series) { captured = &se })
		s.SetRunning(true)
		if err := s.StartRecording(recordTime); err != nil {
			return err
		}
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %.1fs...\n", preset.Name, duration)
	start := time.Now()

	result, err := s.Run(context.Background(), duration, defaultMetrics())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(preset.Name, s.Config(), duration, result, s.Structure(), captured)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("total mass: %.0f kg\n", s.Structure().TotalMass())
	fmt.Printf("yielded: %d, broken: %d\n", result.Yielded, result.Broken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	if captured != nil {
		fmt.Printf("\nrecorded %d samples at %.4fs intervals\n", len(captured.Samples), captured.Interval)
	}

	return nil
}

func runImpulse(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("time") {
		duration = config.DefaultImpulseDuration
	}
	if err := loadConfig(cmd); err != nil {
		return err
	}

	s, preset, err := newSimulation(args[0])
	if err != nil {
		return err
	}

	var captured *sim.Series
	s.Recorder().SetSink(func(se sim.Series) { captured = &se })

	if err := s.RunImpulseTest(magnitude, duration); err != nil {
		return err
	}

	ticks := int(duration/s.Config().TickInterval()) + 1
	for i := 0; i < ticks && s.Recorder().Active(); i++ {
		s.Tick()
	}
	s.SetRunning(false)

	if captured == nil {
		return fmt.Errorf("impulse recording produced no data")
	}

	data := make([]float64, len(captured.Samples))
	for i, sample := range captured.Samples {
		data[i] = sample[0]
	}

	fmt.Printf("impulse test: %s, J=%.0f\n", preset.Name, magnitude)
	fmt.Printf("tracked node: %d, samples: %d\n\n", captured.Node, len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("vertical displacement (m)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, captured.Interval)
	if freq > 0 {
		fmt.Printf("natural frequency: %.3f hz (period %.3f s)\n", freq, 1/freq)
	} else {
		fmt.Println("no dominant frequency resolved")
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	broken, yielded := s.Structure().FailureCounts()
	result := &sim.Result{
		Time:    s.Time(),
		Broken:  broken,
		Yielded: yielded,
		Metrics: map[string]float64{"natural_frequency_hz": freq},
	}
	runID, err := st.Save(preset.Name, s.Config(), duration, result, s.Structure(), captured)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)

	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	s, _, err := newSimulation(args[0])
	if err != nil {
		return err
	}
	if _, err := s.Run(context.Background(), duration, nil); err != nil {
		return err
	}

	return store.WriteElementsCSV(os.Stdout, s.Structure())
}

func runSVG(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	s, _, err := newSimulation(args[0])
	if err != nil {
		return err
	}
	if _, err := s.Run(context.Background(), duration, nil); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteSVG(f, s.Structure(), 800, 400); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tBROKEN\tYIELDED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.5fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Broken,
			run.Yielded,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	header, _, samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no recorded data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s, mode: %s\n", meta.Preset, meta.Mode)
	fmt.Printf("samples: %d\n\n", len(samples))

	numCols := len(samples[0])
	maxPlots := 6
	if numCols > maxPlots {
		numCols = maxPlots
	}

	for col := 0; col < numCols; col++ {
		data := make([]float64, len(samples))
		for i := range samples {
			if col < len(samples[i]) {
				data[i] = samples[i][col]
			}
		}

		caption := fmt.Sprintf("column %d", col)
		if col+1 < len(header) {
			caption = header[col+1]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	header, times, samples, err := st.LoadSeries(runID)
	if err != nil {
		// Runs without a recording still export their metadata.
		return store.ExportJSONStdout(meta, nil, nil, nil)
	}

	return store.ExportJSONStdout(meta, header, times, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	header, times, samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no recorded data to export")
	}

	w := os.Stdout
	fmt.Fprintln(w, strings.Join(header, ","))
	for i := range samples {
		row := make([]string, 0, len(samples[i])+1)
		row = append(row, fmt.Sprintf("%.6f", times[i]))
		for _, v := range samples[i] {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		fmt.Fprintln(w, strings.Join(row, ","))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	name := "warren"
	if len(args) > 0 {
		name = args[0]
	}
	p, err := config.PresetByName(name)
	if err != nil {
		return err
	}

	m := viz.NewModel(*p, simConfig())
	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}
