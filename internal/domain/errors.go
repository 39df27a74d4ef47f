package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the rerunros domain.
// These errors are returned by the public API and can be checked with
// errors.Is.
var (
	// ErrDuplicateShape is returned when a converter is registered twice
	// for the same message shape.
	ErrDuplicateShape = errors.New("rerunros: duplicate shape")

	// ErrUnknownShape is returned when resolving a shape with no
	// registered converter.
	ErrUnknownShape = errors.New("rerunros: unknown shape")

	// ErrUnresolvedConverter is returned when routing table construction
	// finds a rule whose shape has no registered converter.
	ErrUnresolvedConverter = errors.New("rerunros: unresolved converter")

	// ErrInvalidRule is returned when a routing rule is missing a required
	// field or conflicts with another rule on the same topic.
	ErrInvalidRule = errors.New("rerunros: invalid rule")

	// ErrAlreadyRunning is returned when Start() is called on a running
	// instance.
	ErrAlreadyRunning = errors.New("rerunros: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped
	// instance.
	ErrNotRunning = errors.New("rerunros: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("rerunros: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("rerunros: invalid configuration")
)

// ConversionError reports a payload that matched a registered shape but
// could not be converted. It is a per-message condition: the dispatcher
// reports it and continues with the next rule or message.
type ConversionError struct {
	Shape  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("convert %s: %s: %v", e.Shape, e.Reason, e.Err)
	}
	return fmt.Sprintf("convert %s: %s", e.Shape, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *ConversionError) Unwrap() error { return e.Err }

// NewConversionError builds a ConversionError for the given shape.
func NewConversionError(shape, reason string, err error) *ConversionError {
	return &ConversionError{Shape: shape, Reason: reason, Err: err}
}
