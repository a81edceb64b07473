package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lwave/internal/boundary"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/metrics"
	"github.com/san-kum/lwave/internal/stencil"
)

type Registry struct {
	schemes map[string]func(grid.Params) stencil.Scheme
}

func NewRegistry() *Registry {
	r := &Registry{
		schemes: make(map[string]func(grid.Params) stencil.Scheme),
	}

	r.schemes["coupled"] = func(p grid.Params) stencil.Scheme { return stencil.NewCoupled(p) }
	r.schemes["maxwell"] = func(p grid.Params) stencil.Scheme { return stencil.NewMaxwell(p) }
	r.schemes["advection"] = func(p grid.Params) stencil.Scheme { return stencil.NewAdvection(p) }
	r.schemes["dispersive"] = func(p grid.Params) stencil.Scheme { return stencil.NewDispersive(p) }

	return r
}

// Register adds or replaces a scheme constructor.
func (r *Registry) Register(name string, fn func(grid.Params) stencil.Scheme) {
	r.schemes[name] = fn
}

func (r *Registry) GetScheme(name string, p grid.Params) (stencil.Scheme, error) {
	fn, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownScheme)
	}
	return fn(p), nil
}

func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metrics recorded with every stored run. Fixed
// boundaries also get an edge monitor that ignores step 0.
func (r *Registry) DefaultMetrics(s stencil.Scheme, mode dynamo.BoundaryMode, fixedValue float64) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewEnergy(),
		metrics.NewStability(1e6),
		metrics.NewAmplitude(),
		metrics.NewPeak(0),
	}
	if mode == dynamo.Fixed {
		ms = append(ms, metrics.NewEdge(s.Reach(), fixedValue, 1))
	}
	return ms
}

// MinPoints is the smallest grid a scheme accepts under a boundary mode.
func (r *Registry) MinPoints(s stencil.Scheme, mode dynamo.BoundaryMode) int {
	return boundary.MinPoints(mode, s.Reach())
}
