package resume

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned for section names the builder does not know,
// and for list operations on the personal section.
var ErrUnknownSection = errors.New("unknown resume section")

// ErrLastEntry is returned when the removal policy keeps the last row of a section.
var ErrLastEntry = &ValidationError{Field: "id", Message: "cannot remove the last entry of a section"}

// ErrStaleEnhancement is returned when the field changed while an enhancement was in flight.
var ErrStaleEnhancement = errors.New("field changed while enhancement was in progress; result discarded")

// ValidationError reports user input the builder refuses. The model is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// EnhancementError reports a failed or rejected remote enhancement.
// Message is meant for the user; Cause is set for transport failures.
type EnhancementError struct {
	Message string
	Cause   error
}

func (e *EnhancementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhancement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhancement failed: %s", e.Message)
}

func (e *EnhancementError) Unwrap() error {
	return e.Cause
}
