package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing title, too many tags, duplicate tag names).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repos when a write collides with a unique
// constraint (tag normalized name, section tag set key).
var ErrConflict = errors.New("conflict")

// ValidationError carries the caller-facing message of a rule violation.
// It matches ErrValidation under errors.Is, so callers can branch on the
// sentinel and use errors.As only when they need the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(msg string) error {
	return &ValidationError{Message: msg}
}
