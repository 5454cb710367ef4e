package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks form input that failed validation. The wrapped message names the field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a lookup by id missed.
	ErrNotFound = errors.New("not found")
)

// Invalid builds an ErrValidation-wrapped error with a field-level message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
