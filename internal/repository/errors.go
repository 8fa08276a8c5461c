package repository

import "errors"

// Errors shared by all repository implementations. The gorm implementations
// map driver-level failures onto these so the service layer never has to
// inspect database errors directly.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates a write violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)
