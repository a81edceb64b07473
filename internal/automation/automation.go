package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lwave/internal/config"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/experiment"
	"github.com/san-kum/lwave/internal/export"
	"github.com/san-kum/lwave/internal/sim"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a scheme preset and overrides any config field
// listed under set.
type ScenarioStep struct {
	Scheme string    `yaml:"scheme"`
	Preset string    `yaml:"preset"`
	SaveAs string    `yaml:"save_as"`
	Set    yaml.Node `yaml:"set"`
}

// Config resolves the preset and applies the overrides.
func (s ScenarioStep) Config() (*config.Config, error) {
	preset := s.Preset
	if preset == "" {
		preset = "default"
	}
	cfg := config.GetPreset(s.Scheme, preset)
	if cfg == nil {
		return nil, fmt.Errorf("preset %s/%s: %w", s.Scheme, preset, dynamo.ErrUnknownScheme)
	}
	if s.Set.Kind != 0 {
		if err := s.Set.Decode(cfg); err != nil {
			return nil, fmt.Errorf("overrides: %w", err)
		}
	}
	return cfg, nil
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps: %w", scenario.Name, dynamo.ErrInvalidConfig)
	}
	return &scenario, nil
}

// Outcome is the result of one scenario step.
type Outcome struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes all steps in order. Cancellation is checked between
// runs; a run in progress always completes.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		cfg, err := step.Config()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%s_%d", cfg.Scheme, i+1)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "name", name, "scheme", cfg.Scheme)

		exp, err := experiment.New(cfg, registry, sim.WithLogger(logger))
		if err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run()
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}
		outcomes = append(outcomes, Outcome{Name: name, Config: cfg, Result: result})
	}

	return outcomes, nil
}

// SweepParams are the config fields a sweep may vary.
var SweepParams = []string{"courant", "points", "speed", "steps"}

// ParameterSweep runs one config across a list of values for one field.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	Values    []float64
}

// CourantSweep is the dispersive CFL study of the base config.
func CourantSweep(base *config.Config) *ParameterSweep {
	return &ParameterSweep{Base: base, ParamName: "courant", Values: config.SweepCourants}
}

func apply(cfg *config.Config, name string, v float64) error {
	switch strings.ToLower(name) {
	case "courant", "cfl":
		cfg.Courant = v
	case "points", "n":
		cfg.Points = int(v)
	case "speed", "c":
		cfg.Speed = v
	case "steps":
		cfg.Steps = int(v)
	default:
		return dynamo.NewConfigError("param", name)
	}
	return nil
}

// SweepResult holds the summary of one sweep point.
type SweepResult struct {
	ParamValue   float64
	Config       *config.Config
	Result       *sim.Result
	Lambda       float64
	MaxAmplitude float64
	EnergyDrift  float64
	Stable       bool
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if sweep.Base == nil || len(sweep.Values) == 0 {
		return nil, fmt.Errorf("empty sweep: %w", dynamo.ErrInvalidConfig)
	}
	results := make([]SweepResult, 0, len(sweep.Values))

	for i, v := range sweep.Values {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		cfg := sweep.Base.Clone()
		if err := apply(cfg, sweep.ParamName, v); err != nil {
			return nil, err
		}

		exp, err := experiment.New(cfg, registry, sim.WithLogger(logger))
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}
		result, err := exp.Run()
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}

		results = append(results, SweepResult{
			ParamValue:   v,
			Config:       cfg,
			Result:       result,
			Lambda:       result.Params.Lambda,
			MaxAmplitude: result.Metrics["max_amplitude"],
			EnergyDrift:  result.Metrics["energy_drift"],
			Stable:       result.Metrics["stability"] == 1 && len(result.Warnings) == 0,
		})
		logger.Info("sweep point", "index", i+1, "of", len(sweep.Values), "param", sweep.ParamName, "value", v)
	}

	return results, nil
}

// SweepFileName names the frames file of one sweep point after its lambda.
func SweepFileName(lambda float64) string {
	return fmt.Sprintf("wave_data_%f.txt", lambda)
}

// WriteSweepFrames writes every sweep point as a FRAME-block text file in dir
// and returns the paths written.
func WriteSweepFrames(dir string, results []SweepResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(results))
	for _, r := range results {
		path := filepath.Join(dir, SweepFileName(r.Lambda))
		if err := writeFrames(path, r.Result); err != nil {
			return paths, fmt.Errorf("lambda %g: %w", r.Lambda, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFrames(path string, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteFrames(f, res, 1); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
