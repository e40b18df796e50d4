package storage

import "errors"

// Storage and pipeline sentinel errors.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert a record
	// with a key that already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable is returned when an external source cannot be
	// reached. The pipeline continues with the remaining sources.
	ErrSourceUnavailable = errors.New("source unavailable")
)
