package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/local_storage_mock.go -package=mock

// LocalStorage is the persistent key/value store the client keeps between
// runs: role-scoped session tokens and their user objects. Values are opaque
// strings; the store never interprets them.
type LocalStorage interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// SetMany stores all pairs in one transaction.
	SetMany(ctx context.Context, values map[string]string) error
	// Delete removes every listed key in one transaction. Missing keys are
	// not an error.
	Delete(ctx context.Context, keys ...string) error
}
