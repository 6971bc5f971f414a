package store

import "errors"

// Sentinel errors returned by [LocalStorage] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyKey is returned when an operation receives an empty key.
	ErrEmptyKey = errors.New("empty storage key")
)

// Low-level database operation errors. Repository methods wrap the driver
// error with one of these so callers can tell the failing step apart.
var (
	ErrBeginTx  = errors.New("failed to begin transaction")
	ErrCommitTx = errors.New("failed to commit transaction")
	ErrBuildSQL = errors.New("failed to build sql statement")
	ErrExecSQL  = errors.New("failed to execute sql statement")
)
