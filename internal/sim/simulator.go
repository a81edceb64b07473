package sim

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/lwave/internal/boundary"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
	"github.com/san-kum/lwave/internal/stencil"
)

// Simulator drives one scheme over a fixed grid.
type Simulator struct {
	scheme    stencil.Scheme
	grid      *grid.Grid
	params    grid.Params
	shape     initial.Shape
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    *slog.Logger
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(scheme stencil.Scheme, g *grid.Grid, p grid.Params, shape initial.Shape, opts ...Option) *Simulator {
	s := &Simulator{
		scheme:    scheme,
		grid:      g,
		params:    p,
		shape:     shape,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Scheme() stencil.Scheme { return s.scheme }
func (s *Simulator) Grid() *grid.Grid       { return s.grid }
func (s *Simulator) Params() grid.Params    { return s.params }

// Run steps the scheme cfg.Steps times and returns cfg.Steps+1 frames.
func (s *Simulator) Run(cfg Config) (*Result, error) {
	run, err := s.Start(cfg)
	if err != nil {
		return nil, err
	}
	for run.Step() {
	}
	return run.Result(), nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return dynamo.NewConfigError("steps", cfg.Steps)
	}
	if s.grid == nil || s.scheme == nil || s.shape == nil {
		return fmt.Errorf("simulator not set up: %w", dynamo.ErrInvalidConfig)
	}
	need := boundary.MinPoints(cfg.Boundary, s.scheme.Reach())
	if s.grid.N() < need {
		return &dynamo.ConfigError{
			Field:   "points",
			Value:   fmt.Sprintf("%d < %d for %s/%s", s.grid.N(), need, s.scheme.Name(), cfg.Boundary),
			Wrapped: dynamo.ErrGridTooSmall,
		}
	}
	return nil
}

// Start seeds the time levels and records the seeded frames. The returned
// Run advances one step per call to Step.
func (s *Simulator) Start(cfg Config) (*Run, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	enforcer, err := boundary.For(cfg.Boundary, s.scheme.Reach(), cfg.FixedValue)
	if err != nil {
		return nil, err
	}
	if cfg.Direction == 0 {
		cfg.Direction = initial.Rightward
	}

	n := s.grid.N()
	lo, hi := stencil.Interior(s.scheme, n)
	r := &Run{
		sim:      s,
		cfg:      cfg,
		ring:     NewRing(s.scheme.Levels(), len(s.scheme.Fields()), n),
		enforcer: enforcer,
		rec:      NewRecorder(cfg.Steps + 1),
		lo:       lo,
		hi:       hi,
		result: &Result{
			Scheme:     s.scheme.Name(),
			FieldNames: s.scheme.Fields(),
			Grid:       s.grid,
			Params:     s.params,
			Boundary:   cfg.Boundary,
			Metrics:    make(map[string]float64),
			Warnings:   make([]string, 0),
		},
	}

	if warn := s.params.Stability(); warn != nil {
		s.logger.Warn("unstable courant ratio", "scheme", s.scheme.Name(), "lambda", s.params.Lambda)
		r.result.Warnings = append(r.result.Warnings, warn.Error())
	}
	s.logger.Debug("run start",
		"scheme", s.scheme.Name(),
		"points", n,
		"steps", cfg.Steps,
		"boundary", cfg.Boundary.String(),
		"dt", s.params.Dt,
		"lambda", s.params.Lambda,
	)

	for _, m := range s.metrics {
		m.Reset()
	}

	seeds := r.ring.Seeds()
	s.scheme.Seed(s.grid, s.shape, cfg.Direction, seeds)
	for step, level := range seeds {
		if step > cfg.Steps {
			break
		}
		// the Taylor start level is a computed step, step 0 stays exact
		if step > 0 {
			boundary.ApplyAll(enforcer, level)
		}
		r.step = step
		r.record(level)
	}
	return r, nil
}

// Run is an in-progress integration owned by a single caller.
type Run struct {
	sim      *Simulator
	cfg      Config
	ring     *Ring
	enforcer boundary.Enforcer
	rec      *Recorder
	lo, hi   int
	step     int
	result   *Result
}

func (r *Run) Done() bool { return r.step >= r.cfg.Steps }

// StepIndex is the step number of the latest recorded frame.
func (r *Run) StepIndex() int { return r.step }

// Step computes, enforces and records the next frame. It reports false once
// the configured step count has been reached.
func (r *Run) Step() bool {
	if r.Done() {
		return false
	}
	s := r.sim
	next, curr, prev := r.ring.Next(), r.ring.Curr(), r.ring.Prev()
	s.scheme.Update(next, curr, prev, r.lo, r.hi)
	boundary.ApplyAll(r.enforcer, next)

	r.step++
	r.record(next)
	r.ring.Rotate()
	return true
}

func (r *Run) record(fields []dynamo.Field) {
	fr := r.rec.Record(r.step, r.sim.params.Time(r.step), fields)
	for _, m := range r.sim.metrics {
		m.Observe(fr)
	}
	for _, o := range r.sim.observers {
		o.OnFrame(fr)
	}
}

// Latest returns the most recently recorded frame.
func (r *Run) Latest() dynamo.Frame {
	fr, _ := r.rec.Last()
	return fr
}

// Result returns the history so far with current metric values.
func (r *Run) Result() *Result {
	r.result.Frames = r.rec.Frames()
	for _, m := range r.sim.metrics {
		r.result.Metrics[m.Name()] = m.Value()
	}
	return r.result
}

// Frames returns the frames recorded so far without refreshing metrics.
func (r *Run) Frames() []dynamo.Frame { return r.rec.Frames() }

// Restart discards the history and reseeds from step 0.
func (r *Run) Restart() (*Run, error) {
	return r.sim.Start(r.cfg)
}
