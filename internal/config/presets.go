package config

import "sort"

func unitDomain(scheme, boundary string, courant float64) *Config {
	return &Config{
		Scheme: scheme, Points: 200, XMin: 0, XMax: 1, Spacing: "exclusive",
		Speed: 1, Courant: courant, Steps: 1000, Boundary: boundary,
		Pulse: PulseConfig{Shape: ShapeNarrow, Center: 0.5, Width: DefaultWidth},
	}
}

func advection(boundary string) *Config {
	return &Config{
		Scheme: "advection", Points: 200, XMin: 0, XMax: 1, Spacing: "inclusive",
		Speed: 3e8, Courant: 0.5, Steps: 1000, Boundary: boundary,
		Pulse: PulseConfig{Shape: ShapeNarrow, Center: 0.5, Width: DefaultWidth},
	}
}

func dispersive(courant float64, boundary string) *Config {
	return &Config{
		Scheme: "dispersive", Points: 201, XMin: -100, XMax: 100, Spacing: "inclusive",
		Speed: 1, Courant: courant, Steps: 700, Boundary: boundary,
		Pulse: PulseConfig{Shape: ShapeGaussian, Center: -50, Sigma: 10},
	}
}

// SweepCourants are the Courant numbers of the dispersive CFL study.
var SweepCourants = []float64{0.1, 0.3, 0.5, 0.7}

var Presets = map[string]map[string]*Config{
	"coupled": {
		"default": unitDomain("coupled", "periodic", 0.9),
		"fixed":   unitDomain("coupled", "fixed", 0.9),
		"gentle":  unitDomain("coupled", "periodic", 0.5),
	},
	"maxwell": {
		"default":  unitDomain("maxwell", "fixed", 0.9),
		"periodic": unitDomain("maxwell", "periodic", 0.5),
		"unstable": unitDomain("maxwell", "fixed", 1.1),
	},
	"advection": {
		"default": advection("periodic"),
		"fixed":   advection("fixed"),
	},
	"dispersive": {
		"default":  dispersive(0.3, "fixed"),
		"cfl-0.1":  dispersive(0.1, "fixed"),
		"cfl-0.5":  dispersive(0.5, "fixed"),
		"cfl-0.7":  dispersive(0.7, "fixed"),
		"periodic": dispersive(0.3, "periodic"),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scheme, preset string) *Config {
	schemePresets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	cfg, ok := schemePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scheme string) []string {
	schemePresets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(schemePresets))
	for name := range schemePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
