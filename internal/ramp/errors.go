package ramp

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight is returned when a submit is attempted while a
	// previous one for the same step is still on the wire.
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrWrongState is returned when an operation is invoked from a state it
	// does not apply to.
	ErrWrongState = errors.New("operation not allowed in current state")

	// ErrReconciliationMismatch means the server has no record of an order
	// the client believed was submitted; the user must restart the flow.
	ErrReconciliationMismatch = errors.New("transaction not found")
)

// ValidationError is a field-level input error. It is produced before any
// network call, is never retried, and is surfaced inline next to the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RetryExhaustedError wraps the last error after the retry budget for a step
// ran out. The step stays in its collecting state with all fields preserved.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}
