package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks malformed score weights.
	ErrInvalidConfiguration = errors.New("invalid analysis configuration")
	// ErrInsufficientData marks a sample below the window threshold.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	// ErrInvalidEvent marks a malformed task event record.
	ErrInvalidEvent = errors.New("invalid task event")
)

// InvalidConfigurationError reports a weight set that does not sum to 1.0.
type InvalidConfigurationError struct {
	Sum float64
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid analysis configuration: weights sum to %.6f, want 1.0", e.Sum)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// InsufficientDataError reports how far the sample fell short of the
// threshold so the caller can explain the exact shortfall.
type InsufficientDataError struct {
	Actual   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for analysis: %d events in window, need %d", e.Actual, e.Required)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// InvalidEventError identifies the offending record and the violated invariant.
type InvalidEventError struct {
	TaskID string
	Reason string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid task event %q: %s", e.TaskID, e.Reason)
}

func (e *InvalidEventError) Unwrap() error { return ErrInvalidEvent }
