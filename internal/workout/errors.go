package workout

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveSession - logging a set or finishing requires a running session.
	ErrNoActiveSession = errors.New("no active workout session")
	// ErrSessionInProgress - a user can have at most one running session.
	ErrSessionInProgress = errors.New("workout session already in progress")
	ErrSessionNotFound   = errors.New("workout session not found")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
