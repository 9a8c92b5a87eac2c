package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched (via errors.Is) by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError is the single error kind raised by the calculators.
// Field names the offending input, Reason says what is wrong with it.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) succeed for any field.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError with a formatted reason.
func NewInvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidField extracts the field name from err when it is an InvalidInputError.
func InvalidField(err error) (string, bool) {
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		return inv.Field, true
	}
	return "", false
}
