package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/vlasim/internal/config"
	"github.com/san-kum/vlasim/internal/diagnostics"
	"github.com/san-kum/vlasim/internal/dispersion"
	"github.com/san-kum/vlasim/internal/experiment"
	"github.com/san-kum/vlasim/internal/export"
	"github.com/san-kum/vlasim/internal/integrate"
	"github.com/san-kum/vlasim/internal/sim"
	"github.com/san-kum/vlasim/internal/storage"
	"github.com/san-kum/vlasim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	nx         int
	nv         int
	vmax       float64
	dt         float64
	nt         int
	nu         float64
	operator   string
	integrator string
	k0         float64
	a0         float64
	w0         float64
	perturb    float64
	live       bool
	phasePNG   string
	sweepMin   float64
	sweepMax   float64
	sweepN     int
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))

// main is the entry point for the vlasim CLI; it registers commands and
// flags and executes the root command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "vlasim",
		Short: "1D-1V Vlasov-Poisson-Fokker-Planck solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vlasim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "named scenario (see 'vlasim presets')")
	runCmd.Flags().IntVar(&nx, "nx", 32, "spatial grid points")
	runCmd.Flags().IntVar(&nv, "nv", 512, "velocity grid points")
	runCmd.Flags().Float64Var(&vmax, "vmax", 6.4, "velocity domain half-width")
	runCmd.Flags().Float64Var(&dt, "dt", 0.16, "timestep")
	runCmd.Flags().IntVar(&nt, "nt", 500, "number of steps")
	runCmd.Flags().Float64Var(&nu, "nu", 0, "collision frequency")
	runCmd.Flags().StringVar(&operator, "operator", "lb", "collision operator (lb|dg)")
	runCmd.Flags().StringVar(&integrator, "integrator", "leapfrog", "time integrator (leapfrog|pefrl|h-sixth)")
	runCmd.Flags().Float64Var(&k0, "k0", 0.3, "driver wavenumber")
	runCmd.Flags().Float64Var(&a0, "a0", 4e-7, "driver amplitude")
	runCmd.Flags().Float64Var(&w0, "w0", 0, "driver frequency (0 = resonant)")
	runCmd.Flags().Float64Var(&perturb, "perturb", 0, "initial density perturbation amplitude")
	runCmd.Flags().BoolVar(&live, "live", false, "show live terminal view")
	runCmd.Flags().StringVar(&phasePNG, "phase", "", "write the final phase-space density to this PNG path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id] [out.png]",
		Short: "render a stored run's field history to PNG",
		Args:  cobra.ExactArgs(2),
		RunE:  renderRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	dispersionCmd := &cobra.Command{
		Use:   "dispersion [k0]",
		Short: "solve the EPW dispersion relation at a wavenumber",
		Args:  cobra.ExactArgs(1),
		RunE:  solveDispersion,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the driver wavenumber and compare against kinetic theory",
		RunE:  sweepWavenumber,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "kmin", 0.25, "lowest wavenumber")
	sweepCmd.Flags().Float64Var(&sweepMax, "kmax", 0.4, "highest wavenumber")
	sweepCmd.Flags().IntVar(&sweepN, "points", 4, "number of sweep points")
	sweepCmd.Flags().IntVar(&nt, "nt", 500, "steps per point")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list the built-in run scenarios",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step rates across integrators",
		RunE:  benchIntegrators,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, renderCmd, exportCmd, dispersionCmd, sweepCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" && configFile != "" {
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	}
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see 'vlasim presets')", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override the file.
	if cmd.Flags().Changed("nx") {
		cfg.Nx = nx
	}
	if cmd.Flags().Changed("nv") {
		cfg.Nv = nv
	}
	if cmd.Flags().Changed("vmax") {
		cfg.Vmax = vmax
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("nt") {
		cfg.Nt = nt
	}
	if cmd.Flags().Changed("nu") {
		cfg.Nu = nu
	}
	if cmd.Flags().Changed("operator") {
		cfg.Operator = operator
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("k0") {
		cfg.Driver.K0 = k0
	}
	if cmd.Flags().Changed("a0") {
		cfg.Driver.A0 = a0
	}
	if cmd.Flags().Changed("w0") {
		cfg.Driver.W0 = w0
	}
	if cmd.Flags().Changed("perturb") {
		cfg.Perturbation.Amp = perturb
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner, f0, g, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	health := diagnostics.NewHealth(g)
	runner.AddObserver(health)

	var (
		hist *diagnostics.FieldHistory
		res  *sim.Result
	)
	start := time.Now()

	if live {
		res, hist, err = tui.Run(context.Background(), runner, f0, cfg.Nt)
	} else {
		hist = &diagnostics.FieldHistory{}
		runner.AddObserver(hist)
		fmt.Printf("running %d steps on a %dx%d grid...\n", cfg.Nt, cfg.Nx, cfg.Nv)
		res, err = runner.Run(context.Background(), f0)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics := map[string]float64{
		"damping_rate": diagnostics.DampingRate(hist.Times, hist.Amp),
		"frequency":    diagnostics.OscillationFrequency(hist.Times, hist.Re),
	}
	if n := len(health.Density); n > 0 {
		metrics["density_drift"] = health.Density[n-1] - health.Density[0]
	}

	runID, err := st.Save(cfg, hist, health, metrics)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("vlasim run complete"))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)

	if phasePNG != "" {
		if err := export.PhaseSpacePNG(res.F, g, runID, phasePNG); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", phasePNG)
	}
	fmt.Println("\nmetrics:")
	for name, val := range metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tDT\tNT\tNU\tOP\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.4f\t%d\t%.2g\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx, run.Nv,
			run.Dt, run.Nt, run.Nu,
			run.Operator, run.Integrator,
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
	hist, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(hist.Amp) == 0 {
		return fmt.Errorf("no history to plot")
	}

	fmt.Printf("run: %s (%dx%d, %s/%s)\n\n", meta.ID, meta.Nx, meta.Nv, meta.Integrator, meta.Operator)

	fmt.Println(asciigraph.Plot(hist.Amp,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("|E_k1| vs step"),
	))
	if len(hist.Density) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(hist.Density,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("mean density vs step"),
		))
	}
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	hist, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if err := export.AmplitudePNG(hist.Times, hist.Amp, args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func solveDispersion(cmd *cobra.Command, args []string) error {
	var k float64
	if _, err := fmt.Sscanf(args[0], "%g", &k); err != nil {
		return fmt.Errorf("bad wavenumber %q: %w", args[0], err)
	}
	root, err := dispersion.EPWRoot(k)
	if err != nil {
		return err
	}
	fmt.Printf("k0 = %g\n", k)
	fmt.Printf("w_epw = %.6f\n", real(root))
	fmt.Printf("nu_ld = %.6f\n", imag(root))
	return nil
}

func sweepWavenumber(cmd *cobra.Command, args []string) error {
	base := config.Default()
	if cmd.Flags().Changed("nt") {
		base.Nt = nt
	}

	sweep, err := experiment.NewSweep(base, sweepMin, sweepMax, sweepN)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping k0 in [%g, %g] over %d points...\n", sweepMin, sweepMax, sweepN)
	points, err := sweep.Run(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K0\tGAMMA\tGAMMA(THEORY)\tOMEGA\tOMEGA(THEORY)")
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.5f\t%.5f\t%.4f\t%.4f\n",
			p.K0, p.MeasuredGamma, p.PredictedGamma, p.MeasuredOmega, p.PredictedOmega)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tNT\tNU\tOP\tINTEG\tDRIVER A0")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%.2g\t%s\t%s\t%.2g\n",
			name, p.Nx, p.Nv, p.Nt, p.Nu, p.Operator, p.Integrator, p.Driver.A0)
	}
	return w.Flush()
}

func benchIntegrators(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.Nt = 50
	if err := cfg.Finalize(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range integrate.Names() {
		cfg.Integrator = name
		runner, f0, _, err := experiment.Build(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := runner.Run(context.Background(), f0)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n",
			name, res.Steps, elapsed.Round(time.Millisecond),
			float64(res.Steps)/elapsed.Seconds())
	}
	return w.Flush()
}
