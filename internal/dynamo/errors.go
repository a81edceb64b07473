package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine setup and run storage.
var (
	// ErrInvalidConfig indicates a parameter outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrGridTooSmall indicates too few points for the stencil reach.
	ErrGridTooSmall = errors.New("dynamo: grid smaller than stencil width")

	// ErrUnknownScheme indicates a scheme name with no registered engine.
	ErrUnknownScheme = errors.New("dynamo: unknown scheme")

	// ErrUnknownBoundary indicates a boundary selector that is neither fixed nor periodic.
	ErrUnknownBoundary = errors.New("dynamo: unknown boundary mode")

	// ErrNoFrames indicates an empty history.
	ErrNoFrames = errors.New("dynamo: no frames recorded")
)

// ConfigError wraps a configuration failure with the offending parameter.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// NewConfigError returns a ConfigError wrapping ErrInvalidConfig.
func NewConfigError(field string, value any) *ConfigError {
	return &ConfigError{Field: field, Value: value, Wrapped: ErrInvalidConfig}
}

// StabilityWarning reports a Courant ratio at or above 1. It is never fatal.
type StabilityWarning struct {
	Lambda float64
}

func (w *StabilityWarning) Error() string {
	return fmt.Sprintf("lambda = c*dt/dx = %.4f >= 1, scheme may be unstable", w.Lambda)
}
