package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/lwave/internal/config"
	"github.com/san-kum/lwave/internal/experiment"
	"github.com/san-kum/lwave/internal/sim"
	"github.com/san-kum/lwave/internal/viz"
)

var (
	dataDir string
	verbose bool

	configFile string
	preset     string
	points     int
	xMin       float64
	xMax       float64
	spacing    string
	speed      float64
	courant    float64
	steps      int
	boundary   string
	fixedValue float64
	direction  string
	pulseShape string
	center     float64
	sigma      float64
	pulseWidth float64
	saveConfig string

	step      int
	outPath   string
	format    string
	stride    int
	plotWidth int
	plotRows  int
	braille   bool
	probe     int

	sweepParam  string
	sweepValues []float64
	saveRuns    bool
	sweepDir    string
	benchRuns   int
	theme       string
)

// main registers the lwave commands; with no subcommand the preset picker is
// started.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lwave",
		Short:         "lax-wendroff wave propagation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(os.Stderr, verbose)
		},
		RunE: runPicker,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lwave", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [scheme]",
		Short: "run a scheme and store its history",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this yaml file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the fields of one stored frame",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&step, "step", -1, "frame to plot (-1 for the last)")
	addSizeFlags(plotCmd, 80, 15)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.json)")

	exportTextCmd := &cobra.Command{
		Use:   "export-text [run_id]",
		Short: "write the history as whitespace separated text",
		Args:  cobra.ExactArgs(1),
		RunE:  exportText,
	}
	exportTextCmd.Flags().StringVar(&format, "format", "tabular", "tabular or frames")
	exportTextCmd.Flags().IntVar(&stride, "stride", 1, "write every n-th frame")
	exportTextCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render one frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&step, "step", -1, "frame to render (-1 for the last)")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render the braille canvas instead of line plots")
	addSizeFlags(svgCmd, 800, 400)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "pulse speed, spectrum and energy of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&probe, "probe", -1, "grid index for the probe portrait (-1 for the centre)")

	liveCmd := &cobra.Command{
		Use:   "live [scheme]",
		Short: "run a scheme with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset and watch it live",
		RunE:  runPicker,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	presetsCmd := &cobra.Command{
		Use:   "presets [scheme]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scheme]",
		Short: "run one config across several parameter values",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "courant", "parameter to vary")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", config.SweepCourants, "parameter values")
	sweepCmd.Flags().BoolVar(&saveRuns, "save", false, "store every sweep run")
	sweepCmd.Flags().StringVar(&sweepDir, "out-dir", "", "write one wave_data_<lambda>.txt frames file per point here")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario and store every step",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scheme]",
		Short: "time repeated runs of a scheme",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScheme,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 5, "number of runs")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportTextCmd, svgCmd,
		analyzeCmd, liveCmd, tuiCmd, presetsCmd, sweepCmd, scenarioCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.IntVarP(&points, "points", "n", config.DefaultPoints, "grid points")
	f.Float64Var(&xMin, "x-min", 0, "left end of the domain")
	f.Float64Var(&xMax, "x-max", 1, "right end of the domain")
	f.StringVar(&spacing, "spacing", "exclusive", "inclusive or exclusive")
	f.Float64VarP(&speed, "speed", "c", 1, "wave speed")
	f.Float64Var(&courant, "courant", config.DefaultCourant, "courant ratio")
	f.IntVar(&steps, "steps", config.DefaultSteps, "time steps")
	f.StringVar(&boundary, "boundary", "periodic", "fixed or periodic")
	f.Float64Var(&fixedValue, "fixed-value", 0, "edge value for fixed boundaries")
	f.StringVar(&direction, "direction", "right", "initial propagation direction")
	f.StringVar(&pulseShape, "pulse", config.ShapeNarrow, "gaussian or narrow")
	f.Float64Var(&center, "center", 0.5, "pulse centre")
	f.Float64Var(&sigma, "sigma", 0, "gaussian standard deviation")
	f.Float64Var(&pulseWidth, "width", config.DefaultWidth, "narrow pulse width")
}

func addSizeFlags(cmd *cobra.Command, w, h int) {
	cmd.Flags().IntVar(&plotWidth, "width", w, "plot width")
	cmd.Flags().IntVar(&plotRows, "height", h, "plot height")
}

// resolveConfig layers the scheme defaults, a preset, a config file and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, scheme string) (*config.Config, error) {
	cfg, err := config.ForScheme(scheme)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		p := config.GetPreset(scheme, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scheme))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if loaded.Scheme != scheme {
			return nil, fmt.Errorf("config file is for scheme %s, not %s", loaded.Scheme, scheme)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("points") {
		cfg.Points = points
	}
	if f.Changed("x-min") {
		cfg.XMin = xMin
	}
	if f.Changed("x-max") {
		cfg.XMax = xMax
	}
	if f.Changed("spacing") {
		cfg.Spacing = spacing
	}
	if f.Changed("speed") {
		cfg.Speed = speed
	}
	if f.Changed("courant") {
		cfg.Courant = courant
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if f.Changed("fixed-value") {
		cfg.FixedValue = fixedValue
	}
	if f.Changed("direction") {
		cfg.Direction = direction
	}
	if f.Changed("pulse") {
		cfg.Pulse.Shape = pulseShape
	}
	if f.Changed("center") {
		cfg.Pulse.Center = center
	}
	if f.Changed("sigma") {
		cfg.Pulse.Sigma = sigma
	}
	if f.Changed("width") {
		cfg.Pulse.Width = pulseWidth
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newExperiment(cfg *config.Config, logger *slog.Logger) (*experiment.Experiment, error) {
	return experiment.New(cfg, experiment.NewRegistry(), sim.WithLogger(logger))
}

func applyTheme() {
	if theme != "" {
		viz.SetTheme(theme)
	}
}
