package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// Common service errors. The API layer maps these to HTTP status codes.
var (
	// ErrProfileNotFound indicates the session's profile does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrAccountNotFound indicates that the account ID is not part of the profile.
	// API layer should map this to HTTP 404 Not Found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSimulationBlocked indicates simulations are disabled while the
	// profile has validation errors. API layer should map this to HTTP 409 Conflict.
	ErrSimulationBlocked = errors.New("simulation blocked by validation errors")
)

// ProfileServiceError wraps errors from the profile service with context.
type ProfileServiceError struct {
	// Operation is the operation that failed (e.g., "add_account", "simulate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ProfileServiceError.
func (e *ProfileServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("profile service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProfileServiceError) Unwrap() error {
	return e.Err
}

// NewProfileServiceError creates a new ProfileServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewProfileServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, store.ErrProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, ErrSimulationBlocked), errors.Is(err, profile.ErrInvalidProfile):
		return ErrSimulationBlocked
	}

	return &ProfileServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
