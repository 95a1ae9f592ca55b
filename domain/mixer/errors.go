package mixer

import (
	"errors"
	"fmt"
)

// Common errors for mixer operations.
var (
	ErrInvalidSlot      = errors.New("invalid slot")
	ErrInvalidChannel   = errors.New("invalid channel")
	ErrMissingImage     = errors.New("all three images must be selected")
	ErrDuplicateChannel = errors.New("each channel (R, G, B) must be assigned exactly once")
	ErrNoResult         = errors.New("create a mixed image first")
	ErrInvalidSize      = errors.New("export size must be positive")
)

// ValidationError reports a precondition that a merge or export did not meet.
// It wraps one of the sentinel errors above.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s)", e.Err, e.Detail)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, format string, args ...any) *ValidationError {
	return &ValidationError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DecodeError is returned when a source file cannot be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
