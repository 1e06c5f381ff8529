// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Resource errors. The pipeline is unusable until these are resolved.
	ErrEmbeddingResource = errors.New("embedding resource unavailable")

	// Model errors.
	ErrModelNotTrained   = errors.New("model not trained")
	ErrDegenerateDataset = errors.New("dataset needs at least two distinct labels")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")

	// Database errors.
	ErrNotFound          = errors.New("not found")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Severity tells a caller what to do with an error.
type Severity int

const (
	// SeverityNone means there was no error.
	SeverityNone Severity = iota
	// SeverityRecoverable errors can be reported and retried later.
	SeverityRecoverable
	// SeverityFatal errors leave the pipeline unusable.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityRecoverable:
		return "recoverable"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// SeverityOf categorizes err. Unknown errors are treated as fatal.
func SeverityOf(err error) Severity {
	switch {
	case err == nil:
		return SeverityNone
	case errors.Is(err, ErrEmbeddingResource),
		errors.Is(err, ErrDatabaseCorrupted),
		errors.Is(err, ErrMissingConfig),
		errors.Is(err, ErrInvalidConfig):
		return SeverityFatal
	case errors.Is(err, ErrModelNotTrained),
		errors.Is(err, ErrDegenerateDataset),
		errors.Is(err, ErrDimensionMismatch),
		errors.Is(err, ErrNotFound):
		return SeverityRecoverable
	default:
		return SeverityFatal
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
