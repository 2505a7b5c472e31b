package export

import (
	"errors"
	"fmt"
)

// FailureMessage is the only failure text shown to users.
const FailureMessage = "Failed to generate PDF. Please try again."

// ErrExportInProgress is returned when a session already has an export running.
var ErrExportInProgress = errors.New("an export is already in progress")

// ValidationError is returned when the resume cannot be exported as it stands.
// The run never leaves Idle.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Failure wraps an error raised while the run was in Stage.
type Failure struct {
	Stage State
	Cause error
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed while %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("export failed while %s", e.Stage)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}

// UserMessage returns the generic text shown instead of the underlying cause.
func (e *Failure) UserMessage() string {
	return FailureMessage
}
