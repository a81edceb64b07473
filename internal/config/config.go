package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
	"github.com/san-kum/lwave/internal/sim"
)

const (
	DefaultScheme  = "coupled"
	DefaultPoints  = 200
	DefaultSteps   = 1000
	DefaultCourant = 0.9
	DefaultWidth   = 0.01
)

// Schemes lists the scheme names a config may select.
var Schemes = []string{"coupled", "maxwell", "advection", "dispersive"}

const (
	ShapeGaussian = "gaussian"
	ShapeNarrow   = "narrow"
)

type Config struct {
	Scheme     string      `yaml:"scheme" json:"scheme"`
	Points     int         `yaml:"points" json:"points"`
	XMin       float64     `yaml:"x_min" json:"x_min"`
	XMax       float64     `yaml:"x_max" json:"x_max"`
	Spacing    string      `yaml:"spacing" json:"spacing"`
	Speed      float64     `yaml:"speed" json:"speed"`
	Courant    float64     `yaml:"courant" json:"courant"`
	Steps      int         `yaml:"steps" json:"steps"`
	Boundary   string      `yaml:"boundary" json:"boundary"`
	FixedValue float64     `yaml:"fixed_value,omitempty" json:"fixed_value,omitempty"`
	Direction  string      `yaml:"direction,omitempty" json:"direction,omitempty"`
	Pulse      PulseConfig `yaml:"pulse" json:"pulse"`
}

type PulseConfig struct {
	Shape  string  `yaml:"shape" json:"shape"`
	Center float64 `yaml:"center" json:"center"`
	Sigma  float64 `yaml:"sigma,omitempty" json:"sigma,omitempty"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:   DefaultScheme,
		Points:   DefaultPoints,
		XMin:     0,
		XMax:     1,
		Spacing:  "exclusive",
		Speed:    1,
		Courant:  DefaultCourant,
		Steps:    DefaultSteps,
		Boundary: "periodic",
		Pulse: PulseConfig{
			Shape:  ShapeNarrow,
			Center: 0.5,
			Width:  DefaultWidth,
		},
	}
}

// ForScheme returns the default configuration of a scheme.
func ForScheme(scheme string) (*Config, error) {
	cfg := GetPreset(scheme, "default")
	if cfg == nil {
		return nil, fmt.Errorf("%q: %w", scheme, dynamo.ErrUnknownScheme)
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports every out-of-range field at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, value any) {
		errs = append(errs, dynamo.NewConfigError(field, value))
	}

	known := false
	for _, s := range Schemes {
		known = known || s == c.Scheme
	}
	if !known {
		errs = append(errs, fmt.Errorf("scheme %q: %w", c.Scheme, dynamo.ErrUnknownScheme))
	}
	if c.Points < 2 {
		errs = append(errs, &dynamo.ConfigError{Field: "points", Value: c.Points, Wrapped: dynamo.ErrGridTooSmall})
	}
	if !finite(c.XMin) || !finite(c.XMax) || c.XMax <= c.XMin {
		bad("x_max", c.XMax)
	}
	if !finite(c.Speed) || c.Speed <= 0 {
		bad("speed", c.Speed)
	}
	if !finite(c.Courant) || c.Courant <= 0 {
		bad("courant", c.Courant)
	}
	if c.Steps < 0 {
		bad("steps", c.Steps)
	}
	if _, err := grid.ParseSpacing(c.Spacing); err != nil {
		errs = append(errs, err)
	}
	if _, err := dynamo.ParseBoundaryMode(c.Boundary); err != nil {
		errs = append(errs, err)
	}
	switch c.Direction {
	case "", "right", "rightward", "left", "leftward":
	default:
		bad("direction", c.Direction)
	}
	if _, err := c.Pulse.Build(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Build returns the initial profile the pulse describes.
func (p PulseConfig) Build() (initial.Shape, error) {
	if !finite(p.Center) {
		return nil, dynamo.NewConfigError("pulse.center", p.Center)
	}
	switch p.Shape {
	case ShapeGaussian:
		if !finite(p.Sigma) || p.Sigma <= 0 {
			return nil, dynamo.NewConfigError("pulse.sigma", p.Sigma)
		}
		return initial.Gaussian{Center: p.Center, Sigma: p.Sigma}, nil
	case ShapeNarrow, "":
		if !finite(p.Width) || p.Width <= 0 {
			return nil, dynamo.NewConfigError("pulse.width", p.Width)
		}
		return initial.NarrowGaussian{Center: p.Center, Width: p.Width}, nil
	}
	return nil, dynamo.NewConfigError("pulse.shape", p.Shape)
}

func (c *Config) GridSpec() (grid.Spec, error) {
	spacing, err := grid.ParseSpacing(c.Spacing)
	if err != nil {
		return grid.Spec{}, err
	}
	return grid.Spec{
		XMin:    c.XMin,
		XMax:    c.XMax,
		N:       c.Points,
		Spacing: spacing,
		Speed:   c.Speed,
		Courant: c.Courant,
	}, nil
}

func (c *Config) SimConfig() (sim.Config, error) {
	mode, err := dynamo.ParseBoundaryMode(c.Boundary)
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Steps:      c.Steps,
		Boundary:   mode,
		FixedValue: c.FixedValue,
		Direction:  initial.ParseDirection(c.Direction),
	}, nil
}
