package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/analysis"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/config"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/sim"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/storage"
	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/viz"
)

var (
	dataDir      string
	horizon      float64
	gridPoints   int
	trajectories int
	seed         int64
	workers      int
	configFile   string
	preset       string
	times        []float64
	frameDt      float64
)

// main registers the ctmc commands. Every subcommand that runs a chain
// takes either a description file argument or --preset.
func main() {
	rootCmd := &cobra.Command{
		Use:   "ctmc",
		Short: "continuous-time markov chain lab",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ctmc", "data directory")

	checkCmd := &cobra.Command{
		Use:   "check [chain-file]",
		Short: "parse a chain description and report its structure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkChain,
	}

	stationaryCmd := &cobra.Command{
		Use:   "stationary [chain-file]",
		Short: "compute the stationary distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  stationaryChain,
	}

	evolveCmd := &cobra.Command{
		Use:   "evolve [chain-file]",
		Short: "compute the exact distribution over a time grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  evolveChain,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate [chain-file]",
		Short: "estimate the distribution by monte-carlo simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  simulateChain,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [chain-file]",
		Short: "compare simulation against the exact distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareChain,
	}

	for _, c := range []*cobra.Command{checkCmd, stationaryCmd, evolveCmd, simulateCmd, compareCmd} {
		c.Flags().StringVar(&preset, "preset", "", "use a preset chain")
		c.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	}
	for _, c := range []*cobra.Command{evolveCmd, simulateCmd, compareCmd} {
		c.Flags().Float64Var(&horizon, "horizon", config.DefaultHorizon, "time horizon")
		c.Flags().IntVar(&gridPoints, "grid", config.DefaultGridPoints, "number of grid points")
	}
	evolveCmd.Flags().Float64SliceVar(&times, "times", nil, "explicit time points (overrides grid)")
	for _, c := range []*cobra.Command{simulateCmd, compareCmd} {
		c.Flags().IntVar(&trajectories, "trajectories", config.DefaultTrajectories, "trajectory count")
		c.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
		c.Flags().IntVar(&workers, "workers", 1, "parallel workers")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a stored run's probability curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "export a stored run's grid to csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [chain-file]",
		Short: "animate a live trajectory in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a preset chain")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().Float64Var(&frameDt, "dt", 0.05, "simulated seconds per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset chains",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [chain-file]",
		Short: "benchmark the monte-carlo driver",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchChain,
	}
	benchCmd.Flags().StringVar(&preset, "preset", "", "use a preset chain")

	rootCmd.AddCommand(checkCmd, stationaryCmd, evolveCmd, simulateCmd, compareCmd,
		listCmd, plotCmd, exportCmd, exportCSVCmd, liveCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadChain resolves the chain description from, in priority order, the
// --preset flag, a file argument, or a --config file. Preset parameters
// fill in any simulation flags the user left at their defaults.
func loadChain(cmd *cobra.Command, args []string) (*markov.Chain, string, error) {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if f := cmd.Flags().Lookup("horizon"); f != nil && !f.Changed {
			horizon = p.Horizon
		}
		if f := cmd.Flags().Lookup("grid"); f != nil && !f.Changed {
			gridPoints = p.GridPoints
		}
		if f := cmd.Flags().Lookup("trajectories"); f != nil && !f.Changed {
			trajectories = p.Trajectories
		}
		c, err := markov.Parse(p.Chain)
		return c, preset, err
	}

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", err
		}
		c, err := markov.Parse(string(data))
		return c, chainName(args[0]), err
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
		text, err := cfg.ChainText()
		if err != nil {
			return nil, "", err
		}
		c, err := markov.Parse(text)
		return c, chainName(configFile), err
	}

	return nil, "", fmt.Errorf("no chain given: pass a file, --preset, or --config")
}

func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if f := cmd.Flags().Lookup("horizon"); f != nil && !f.Changed && cfg.Horizon > 0 {
		horizon = cfg.Horizon
	}
	if f := cmd.Flags().Lookup("grid"); f != nil && !f.Changed && cfg.GridPoints > 0 {
		gridPoints = cfg.GridPoints
	}
	if f := cmd.Flags().Lookup("trajectories"); f != nil && !f.Changed && cfg.Trajectories > 0 {
		trajectories = cfg.Trajectories
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && !f.Changed && cfg.Seed != 0 {
		seed = cfg.Seed
	}
	if f := cmd.Flags().Lookup("times"); f != nil && !f.Changed && len(cfg.Times) > 0 {
		times = cfg.Times
	}
}

func chainName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func checkChain(cmd *cobra.Command, args []string) error {
	c, name, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("chain: %s\n", name)
	fmt.Printf("states: %d\n", c.NumStates())
	fmt.Printf("transitions: %d\n", len(c.Transitions))
	fmt.Printf("irreducible: %v\n\n", markov.IsIrreducible(c))

	q := markov.GeneratorMatrix(c)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "Q")
	for _, s := range c.States {
		fmt.Fprintf(w, "\t%s", s)
	}
	fmt.Fprintln(w)
	for i, s := range c.States {
		fmt.Fprint(w, s)
		for j := range c.States {
			fmt.Fprintf(w, "\t%.4f", q[i][j])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func stationaryChain(cmd *cobra.Command, args []string) error {
	c, name, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	pi, err := markov.StationaryDistribution(c)
	if err != nil {
		return err
	}

	fmt.Printf("stationary distribution of %s:\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range c.States {
		fmt.Fprintf(w, "%s\t%.6f\n", s, pi[s])
	}
	return w.Flush()
}

func evolveChain(cmd *cobra.Command, args []string) error {
	c, name, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	grid := times
	if len(grid) == 0 {
		grid = markov.TimeGrid(horizon, gridPoints)
	}

	start := time.Now()
	d, err := markov.DistributionOverTime(c, grid)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics := map[string]float64{}
	if pi, err := markov.StationaryDistribution(c); err == nil {
		decay := analysis.DistanceToStationary(d, pi)
		metrics["tv_to_stationary_final"] = decay[len(decay)-1]
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Chain:      name,
		Method:     "exact",
		Horizon:    grid[len(grid)-1],
		GridPoints: len(grid),
		Metrics:    metrics,
	}, d)
	if err != nil {
		return err
	}

	fmt.Printf("computed %d time points in %v\n", len(grid), elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	printDistributionTable(d)
	return nil
}

func simulateChain(cmd *cobra.Command, args []string) error {
	c, name, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	cfg := sim.Config{
		Trajectories: trajectories,
		Horizon:      horizon,
		GridPoints:   gridPoints,
	}

	fmt.Printf("simulating %s (%d trajectories, horizon %.2f)...\n", name, cfg.Trajectories, cfg.Horizon)
	start := time.Now()
	empirical, err := runMonteCarlo(c, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics := map[string]float64{}
	if exact, err := markov.DistributionOverTime(c, empirical.Times); err == nil {
		if distances, err := analysis.Compare(exact, empirical); err == nil {
			metrics["tv_max"] = analysis.MaxDistance(distances)
			metrics["tv_final"] = distances[len(distances)-1]
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Chain:        name,
		Method:       "simulate",
		Horizon:      cfg.Horizon,
		GridPoints:   cfg.GridPoints,
		Trajectories: cfg.Trajectories,
		Seed:         seed,
		Metrics:      metrics,
	}, empirical)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for k, v := range metrics {
		fmt.Printf("  %s: %.6f\n", k, v)
	}
	return nil
}

func runMonteCarlo(c *markov.Chain, cfg sim.Config) (*markov.Distribution, error) {
	if workers > 1 {
		factory := func(worker int) sim.RandSource {
			return rand.New(rand.NewSource(seed + int64(worker))).Float64
		}
		return sim.NewEnsemble(workers).Run(context.Background(), c, cfg, factory)
	}
	rnd := rand.New(rand.NewSource(seed)).Float64
	return sim.Run(context.Background(), c, cfg, rnd)
}

func compareChain(cmd *cobra.Command, args []string) error {
	c, name, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	cfg := sim.Config{
		Trajectories: trajectories,
		Horizon:      horizon,
		GridPoints:   gridPoints,
	}

	empirical, err := runMonteCarlo(c, cfg)
	if err != nil {
		return err
	}
	exact, err := markov.DistributionOverTime(c, empirical.Times)
	if err != nil {
		return err
	}
	distances, err := analysis.Compare(exact, empirical)
	if err != nil {
		return err
	}

	fmt.Printf("%s: theory vs %d trajectories\n\n", name, cfg.Trajectories)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTV DISTANCE")
	for i := range distances {
		fmt.Fprintf(w, "%.3f\t%.5f\n", empirical.Times[i], distances[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.RenderSeries(distances, "TV distance: simulation vs theory"))
	fmt.Printf("\nmax: %.5f\n", analysis.MaxDistance(distances))
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
	fmt.Fprintln(w, "ID\tCHAIN\tMETHOD\tTIME\tHORIZON\tGRID\tTRAJ")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\t%d\n",
			run.ID,
			run.Chain,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			run.GridPoints,
			run.Trajectories,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	dist, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}
	if len(dist.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("chain: %s (%s)\n", meta.Chain, meta.Method)
	fmt.Printf("samples: %d\n\n", len(dist.Times))
	fmt.Print(viz.RenderDistribution(dist))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	dist, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, dist)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	dist, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}
	if len(dist.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, dist.States...)); err != nil {
		return err
	}
	for i := range dist.Times {
		row := []string{strconv.FormatFloat(dist.Times[i], 'f', 6, 64)}
		for _, p := range dist.Probs[i] {
			row = append(row, strconv.FormatFloat(p, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	c, _, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	var pi map[string]float64
	if p, err := markov.StationaryDistribution(c); err == nil {
		pi = p
	}

	rnd := rand.New(rand.NewSource(seed)).Float64
	m := viz.NewModel(c, rnd, frameDt, pi)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchChain(cmd *cobra.Command, args []string) error {
	c, name, err := loadChain(cmd, args)
	if err != nil {
		return err
	}

	counts := []int{1000, 5000, 20000}
	grids := []int{11, 51, 101}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAJ\tGRID\tTIME\tTRAJ/SEC")

	for _, m := range counts {
		for _, g := range grids {
			cfg := sim.Config{Trajectories: m, Horizon: 10.0, GridPoints: g}
			rnd := rand.New(rand.NewSource(42)).Float64

			start := time.Now()
			if _, err := sim.Run(context.Background(), c, cfg, rnd); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", m, g, elapsed, float64(m)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func printDistributionTable(d *markov.Distribution) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "TIME")
	for _, s := range d.States {
		fmt.Fprintf(w, "\t%s", s)
	}
	fmt.Fprintln(w)

	// Print at most ~10 evenly spaced rows so long grids stay readable.
	step := len(d.Times) / 10
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(d.Times); i += step {
		fmt.Fprintf(w, "%.3f", d.Times[i])
		for _, p := range d.Probs[i] {
			fmt.Fprintf(w, "\t%.5f", p)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
