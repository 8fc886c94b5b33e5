package core

import (
	"fmt"

	"github.com/coldreach/coldreach/internal/core/domain"
)

// FailureKind classifies why a run ended in StateFailed.
type FailureKind string

const (
	FailureLocalValidation FailureKind = "local_validation"
	FailureNetwork         FailureKind = "network"
	FailureUpstream        FailureKind = "upstream"
	FailureStructural      FailureKind = "structural"
	FailureTimeout         FailureKind = "timeout"
)

// RunError is the terminal error of a failed run. Err holds the internal
// cause for the logs; UserMessage is the only text shown to the operator.
type RunError struct {
	Kind  FailureKind
	State domain.RunState
	Err   error
}

func (e *RunError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("run failed in state %s (%s)", e.State, e.Kind)
	}
	return fmt.Sprintf("run failed in state %s (%s): %v", e.State, e.Kind, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// UserMessage returns the generic operator-facing message for this failure.
// Internal detail stays in the logs.
func (e *RunError) UserMessage() string {
	if e.Kind == FailureLocalValidation && e.Err != nil {
		return e.Err.Error()
	}
	return "An error occurred while generating emails. Please check the diagnostic logs for details."
}
