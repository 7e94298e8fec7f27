package services

import "errors"

var (
	// ErrSessionClosed is returned by editor operations that need an open
	// add/edit session.
	ErrSessionClosed = errors.New("no editor session open")

	// ErrIndexNotFound is returned when a view-relative index does not map
	// to a store position for the given date.
	ErrIndexNotFound = errors.New("entry index not found")
)

// ValidationError reports a draft field that must be filled before commit.
// The editor session stays open so the caller can correct and retry.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}
