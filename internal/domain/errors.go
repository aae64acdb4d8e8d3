package domain

import (
	"errors"
	"fmt"

	domaintypes "lcforge/internal/domain/types"
)

var (
	// ErrAlreadyConfigured is returned when a builder field that admits
	// exactly one value is set a second time, e.g. adding a second planet
	// to a transit model.
	ErrAlreadyConfigured = errors.New("model component already configured")

	// ErrMisalignedLightCurve is returned when a light curve's columns do
	// not share a length.
	ErrMisalignedLightCurve = errors.New("light curve columns are not index-aligned")
)

// InvalidParameterError reports an out-of-domain or missing value supplied
// directly by the caller (not via distribution sampling).
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q (%v): %s", e.Name, e.Value, e.Reason)
}

// EvaluationError wraps a failure from an external model evaluator. The
// core never clamps or retries; the evaluator's rejection propagates.
type EvaluationError struct {
	Op  string
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("model evaluation failed in %s: %v", e.Op, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// UnsupportedSignalTypeError reports an unrecognized signal type. It is
// raised rather than swallowed so callers cannot mistake "unknown type"
// for "no result".
type UnsupportedSignalTypeError struct {
	SignalType domaintypes.SignalType
}

func (e *UnsupportedSignalTypeError) Error() string {
	return fmt.Sprintf("unsupported signal type %q", string(e.SignalType))
}
