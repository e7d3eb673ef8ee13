package storage

import "errors"

// Audit store errors. Analysis records are written once and never updated.
var (
	// ErrNotFound is returned when no analysis record has the requested ID.
	ErrNotFound = errors.New("analysis record not found")

	// ErrDuplicateKey is returned when an analysis ID is inserted twice.
	ErrDuplicateKey = errors.New("duplicate analysis id: audit records are immutable")

	// ErrInvalidInput is returned when a record fails ValidateRecord or an ID
	// is not a well-formed UUID.
	ErrInvalidInput = errors.New("invalid analysis record")
)
