package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess            = 0
	ExitErrorGeneric       = 1
	ExitErrorTimeout       = 2
	ExitErrorMismatch      = 3 // converged methods disagree on the root
	ExitErrorConfig        = 4
	ExitErrorNoConvergence = 5 // no selected method produced a root
	ExitErrorCanceled      = 130
)

// ConfigError reports unusable command-line or environment input.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SolveError attaches the solver key to an engine or context failure.
type SolveError struct {
	// Method is the solver key, e.g. "bisection". It may be empty.
	Method string
	Cause  error
}

func (e SolveError) Error() string {
	if e.Method == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Method, e.Cause)
}

func (e SolveError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that exceeded its time budget.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError names the input field that failed a range or format check.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted message, keeping it unwrappable.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
