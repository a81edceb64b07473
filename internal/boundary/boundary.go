// Package boundary overwrites edge values after each interior update.
//
// A single [Enforcer] is chosen per run from the boundary mode and the
// stencil reach; it is never re-selected per point or per step.
package boundary

import (
	"fmt"

	"github.com/san-kum/lwave/internal/dynamo"
)

type Enforcer interface {
	Mode() dynamo.BoundaryMode
	Apply(f dynamo.Field)
}

// For returns the enforcer for mode on a stencil of the given reach.
func For(mode dynamo.BoundaryMode, reach int, value float64) (Enforcer, error) {
	if reach < 1 {
		return nil, dynamo.NewConfigError("reach", reach)
	}
	switch mode {
	case dynamo.Fixed:
		return Fixed{Width: reach, Value: value}, nil
	case dynamo.Periodic:
		return Periodic{Width: reach}, nil
	}
	return nil, fmt.Errorf("%v: %w", mode, dynamo.ErrUnknownBoundary)
}

// MinPoints is the smallest grid on which mode keeps ghost and source points
// apart for a stencil of the given reach.
func MinPoints(mode dynamo.BoundaryMode, reach int) int {
	n := 2*reach + 1
	if mode == dynamo.Periodic && 3*reach > n {
		n = 3 * reach
	}
	return n
}

// ApplyAll enforces e on every field of a buffer.
func ApplyAll(e Enforcer, fields []dynamo.Field) {
	for _, f := range fields {
		e.Apply(f)
	}
}

// Fixed clamps Width points on each side to Value.
type Fixed struct {
	Width int
	Value float64
}

func (Fixed) Mode() dynamo.BoundaryMode { return dynamo.Fixed }

func (b Fixed) Apply(f dynamo.Field) {
	n := len(f)
	for k := 0; k < b.Width && k < n; k++ {
		f[k] = b.Value
		f[n-1-k] = b.Value
	}
}

// Periodic wraps Width ghost points per side from the opposite interior:
// f[k] = f[n-2w+k] and f[n-w+k] = f[w+k] for k < w.
type Periodic struct {
	Width int
}

func (Periodic) Mode() dynamo.BoundaryMode { return dynamo.Periodic }

func (b Periodic) Apply(f dynamo.Field) {
	n, w := len(f), b.Width
	if n < 2*w {
		return
	}
	for k := 0; k < w; k++ {
		f[k] = f[n-2*w+k]
		f[n-w+k] = f[w+k]
	}
}

// Source returns the index a ghost point is copied from, or -1 for interior
// points. Tests and monitors use it to check the wrap relation.
func (b Periodic) Source(i, n int) int {
	w := b.Width
	switch {
	case i < w:
		return n - 2*w + i
	case i >= n-w:
		return w + i - (n - w)
	}
	return -1
}
