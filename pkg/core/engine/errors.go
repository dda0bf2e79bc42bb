package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports an input that violates a business rule. The
// transport layer maps it to HTTP 400; every other error is treated as an
// internal failure (500).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err (or anything it wraps) is a
// validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// errInternalf marks an arithmetic invariant violation that validated input
// should never reach. It is a bug, not a control-flow path.
func errInternalf(format string, args ...any) error {
	return fmt.Errorf("internal: "+format, args...)
}
