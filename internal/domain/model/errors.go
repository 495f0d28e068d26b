package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers classify with errors.Is; every layer wraps with %w.
var (
	ErrValidation             = errors.New("validation failed")
	ErrLoanNotFound           = errors.New("loan not found")
	ErrLoanNotActive          = errors.New("loan is not active")
	ErrConcurrentModification = errors.New("loan was modified concurrently")
	ErrPersistence            = errors.New("persistence failed")
)

// Invalid returns an ErrValidation wrapped with a field-level message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
