package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/lwave/internal/analysis"
	"github.com/san-kum/lwave/internal/automation"
	"github.com/san-kum/lwave/internal/config"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/experiment"
	"github.com/san-kum/lwave/internal/export"
	"github.com/san-kum/lwave/internal/metrics"
	"github.com/san-kum/lwave/internal/sim"
	"github.com/san-kum/lwave/internal/storage"
	"github.com/san-kum/lwave/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	exp, err := newExperiment(cfg, slog.Default())
	if err != nil {
		return err
	}

	fmt.Printf("running %s: %d points, %d steps, courant %.3g, %s boundary\n",
		cfg.Scheme, cfg.Points, cfg.Steps, cfg.Courant, cfg.Boundary)
	start := time.Now()
	result, err := exp.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  h: %.4g  dt: %.4g  lambda: %.4f\n",
		len(result.Frames), result.Params.H, result.Params.Dt, result.Params.Lambda)
	printMetrics(os.Stdout, result.Metrics)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, m[name])
	}
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
	fmt.Fprintln(w, "ID\tSCHEME\tTIME\tPOINTS\tSTEPS\tLAMBDA\tBOUNDARY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3f\t%s\n",
			run.ID,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Points,
			run.Config.Steps,
			run.Lambda,
			run.Config.Boundary,
		)
	}
	return w.Flush()
}

// loadRun resolves "latest" to the newest stored run.
func loadRun(runID string) (*sim.Result, *storage.RunMetadata, error) {
	st := storage.New(dataDir)
	if runID == "latest" {
		id, err := st.Latest()
		if err != nil {
			return nil, nil, err
		}
		runID = id
	}
	return st.LoadResult(runID)
}

func pickFrame(res *sim.Result, n int) (dynamo.Frame, error) {
	if n < 0 {
		n = len(res.Frames) - 1
	}
	if n < 0 || n >= len(res.Frames) {
		return dynamo.Frame{}, fmt.Errorf("step %d out of range [0, %d]", n, len(res.Frames)-1)
	}
	return res.Frames[n], nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	res, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("step")
	fr, err := pickFrame(res, n)
	if err != nil {
		return err
	}
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scheme: %s\n", meta.Scheme)
	fmt.Printf("step %d of %d, t = %.4g\n\n", fr.Step, len(res.Frames)-1, fr.Time)

	caption := fmt.Sprintf("%s at t=%.4g", strings.Join(res.FieldNames, ", "), fr.Time)
	fmt.Println(viz.PlotFrame(fr.Fields, w, h, caption))
	return nil
}

func outputFile(cmd *cobra.Command, runID, ext string) string {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = runID + ext
	}
	return out
}

func exportCSV(cmd *cobra.Command, args []string) error {
	res, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outputFile(cmd, meta.ID, ".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteCSV(f, res); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(res.Frames), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	res, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outputFile(cmd, meta.ID, ".json")
	if err := export.ExportJSON(path, res); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportText(cmd *cobra.Command, args []string) error {
	res, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	var w io.Writer = os.Stdout
	if out != "-" {
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	return export.WriteText(w, res, f, stride)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	res, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("step")
	fr, err := pickFrame(res, n)
	if err != nil {
		return err
	}
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")

	var svg string
	if braille {
		canvas := viz.NewCanvas(w/4, h/8)
		yMin, yMax := viz.Bounds(fr)
		for _, f := range fr.Fields {
			viz.DrawProfile(canvas, f, yMin, yMax)
		}
		svg = export.CanvasToSVG(canvas, 2)
	} else {
		series := make([]export.Series, len(res.FieldNames))
		for i, name := range res.FieldNames {
			series[i] = export.Series{Name: name, Values: fr.Fields[i]}
		}
		svg = export.ProfileToSVG(res.Grid.X, series, w, h)
	}
	if svg == "" {
		return fmt.Errorf("nothing to render for %s", meta.ID)
	}

	path := outputFile(cmd, meta.ID, ".svg")
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	res, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("scheme: %s  c: %.4g  lambda: %.4f\n\n", meta.Scheme, res.Params.C, res.Params.Lambda)

	positions := analysis.Track(res.Grid.X, res.Frames, 0)
	if len(positions) > 1 {
		fmt.Printf("peak of %s: %.4g -> %.4g\n", res.FieldNames[0], positions[0], positions[len(positions)-1])
		if res.Boundary == dynamo.Fixed {
			fmt.Printf("fitted speed: %.4g (c = %.4g)\n", analysis.Speed(res.Times(), positions), res.Params.C)
		}
	}

	first := res.Frames[0].Fields[0]
	last := res.Frames[len(res.Frames)-1].Fields[0]
	before := analysis.NewSpectrum(first, res.Params.H)
	after := analysis.NewSpectrum(last, res.Params.H)
	fmt.Printf("dominant wavenumber: %.4g -> %.4g\n", before.Dominant(), after.Dominant())
	fmt.Printf("half-power bandwidth: %.4g -> %.4g\n", before.Bandwidth(0.5), after.Bandwidth(0.5))
	fmt.Printf("rms change of %s: %.4g\n", res.FieldNames[0], analysis.RMSDifference(first, last))

	energy := make([]float64, len(res.Frames))
	for i, fr := range res.Frames {
		energy[i] = metrics.FrameEnergy(fr)
	}
	fmt.Printf("\nenergy %s\n", viz.SparklineChart(energy, 60))
	fmt.Println(viz.PlotSeries(energy, 60, 8, "energy proxy"))

	if len(res.FieldNames) >= 2 {
		i := probe
		if i < 0 || i >= res.Grid.N() {
			i = res.Grid.N() / 2
		}
		portrait := analysis.ProbePortrait(res.Frames, 0, 1, i)
		fmt.Printf("\n%s vs %s at x = %.4g\n", res.FieldNames[0], res.FieldNames[1], res.Grid.X[i])
		fmt.Println(portrait.ASCII(60, 20))
	}
	printMetrics(os.Stdout, res.Metrics)
	return nil
}

// quietLogger keeps slog output from tearing the alt screen.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func liveModel(cfg *config.Config, title string) (viz.Model, error) {
	exp, err := newExperiment(cfg, quietLogger())
	if err != nil {
		return viz.Model{}, err
	}
	return viz.NewModel(exp.GetSimulator(), exp.SimConfig(), title)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	applyTheme()
	title := cfg.Scheme
	if preset != "" {
		title += "/" + preset
	}
	m, err := liveModel(cfg, title)
	if err != nil {
		return err
	}
	return viz.RunLive(m)
}

func runPicker(cmd *cobra.Command, args []string) error {
	applyTheme()
	registry := experiment.NewRegistry()
	var items []viz.PickerItem
	for _, scheme := range registry.ListSchemes() {
		for _, name := range config.ListPresets(scheme) {
			cfg := config.GetPreset(scheme, name)
			items = append(items, viz.PickerItem{
				Name: scheme + "/" + name,
				Description: fmt.Sprintf("%d points, courant %.2g, %s",
					cfg.Points, cfg.Courant, cfg.Boundary),
			})
		}
	}
	launch := func(name string) (viz.Model, error) {
		scheme, p, _ := strings.Cut(name, "/")
		cfg := config.GetPreset(scheme, p)
		if cfg == nil {
			return viz.Model{}, fmt.Errorf("unknown preset %s", name)
		}
		return liveModel(cfg, name)
	}
	return viz.RunInteractive(viz.NewPicker(items, launch))
}

func listPresets(cmd *cobra.Command, args []string) error {
	schemes := config.Schemes
	if len(args) == 1 {
		schemes = args
	}
	for _, scheme := range schemes {
		presets := config.ListPresets(scheme)
		if len(presets) == 0 {
			fmt.Printf("no presets for scheme: %s\n", scheme)
			continue
		}
		fmt.Printf("presets for %s:\n", scheme)
		for _, p := range presets {
			cfg := config.GetPreset(scheme, p)
			fmt.Printf("  %-10s %d points, courant %.2g, %d steps, %s\n",
				p, cfg.Points, cfg.Courant, cfg.Steps, cfg.Boundary)
		}
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sweep := &automation.ParameterSweep{Base: base, ParamName: sweepParam, Values: sweepValues}

	ctx, cancel := signalContext()
	defer cancel()
	results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry(), slog.Default())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLAMBDA\tMAX_AMP\tENERGY_DRIFT\tSTABLE\tRUN\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		runID := "-"
		if saveRuns {
			if runID, err = st.Save(r.Config, r.Result); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%g\t%.3f\t%.4g\t%.3e\t%v\t%s\n",
			r.ParamValue, r.Lambda, r.MaxAmplitude, r.EnergyDrift, r.Stable, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if sweepDir == "" {
		return nil
	}
	paths, err := automation.WriteSweepFrames(sweepDir, results)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("wrote %s\n", p)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	ctx, cancel := signalContext()
	defer cancel()
	outcomes, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), slog.Default())

	st := storage.New(dataDir)
	for _, o := range outcomes {
		runID, serr := st.Save(o.Config, o.Result)
		if serr != nil {
			return serr
		}
		fmt.Printf("  %-16s %s  lambda %.3f  drift %.3e\n",
			o.Name, runID, o.Result.Params.Lambda, o.Result.Metrics["energy_drift"])
	}
	return err
}

func benchScheme(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if benchRuns < 1 {
		return dynamo.NewConfigError("runs", benchRuns)
	}

	fmt.Printf("benchmarking %s: %d points, %d steps\n\n", cfg.Scheme, cfg.Points, cfg.Steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTIME\tPOINT-STEPS/S")

	var total time.Duration
	work := float64(cfg.Points) * float64(cfg.Steps)
	for i := 0; i < benchRuns; i++ {
		exp, err := newExperiment(cfg, quietLogger())
		if err != nil {
			return err
		}
		start := time.Now()
		if _, err := exp.Run(); err != nil {
			return err
		}
		elapsed := time.Since(start)
		total += elapsed
		fmt.Fprintf(w, "%d\t%v\t%.3g\n", i+1, elapsed, work/elapsed.Seconds())
	}
	mean := total / time.Duration(benchRuns)
	fmt.Fprintf(w, "mean\t%v\t%.3g\n", mean, work/mean.Seconds())
	return w.Flush()
}
