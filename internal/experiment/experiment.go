package experiment

import (
	"github.com/san-kum/lwave/internal/config"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/sim"
)

// Experiment is one validated configuration wired to a simulator.
type Experiment struct {
	cfg       *config.Config
	simCfg    sim.Config
	simulator *sim.Simulator
}

// New validates cfg and builds the grid, scheme, initial shape and simulator
// it describes. Default metrics are attached.
func New(cfg *config.Config, registry *Registry, opts ...sim.Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spec, err := cfg.GridSpec()
	if err != nil {
		return nil, err
	}
	g, p, err := grid.New(spec)
	if err != nil {
		return nil, err
	}
	scheme, err := registry.GetScheme(cfg.Scheme, p)
	if err != nil {
		return nil, err
	}
	shape, err := cfg.Pulse.Build()
	if err != nil {
		return nil, err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}

	s := sim.New(scheme, g, p, shape, opts...)
	for _, m := range registry.DefaultMetrics(scheme, simCfg.Boundary, simCfg.FixedValue) {
		s.AddMetric(m)
	}
	return &Experiment{cfg: cfg.Clone(), simCfg: simCfg, simulator: s}, nil
}

func (e *Experiment) Run() (*sim.Result, error) {
	return e.simulator.Run(e.simCfg)
}

// AddObserver attaches an observer to the underlying simulator.
func (e *Experiment) AddObserver(o dynamo.Observer) {
	e.simulator.AddObserver(o)
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) SimConfig() sim.Config { return e.simCfg }

// GetSimulator returns the underlying simulator for the live viewer.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
