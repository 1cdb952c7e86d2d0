package pkg

import (
	"errors"
	"fmt"
)

// ValidationError marks a rejected caller input. Handlers map it to a 400
// with the reason, everything else stays a 500.
type ValidationError struct {
	Reason string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
