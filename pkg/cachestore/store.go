package cachestore

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a key does not exist or has expired.
	ErrNotFound = errors.New("cachestore: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("cachestore: closed")
)

// Store is a keyed store of serialized responses with TTL support.
// Implementations must provide atomic get/set by key; last-writer-wins on
// concurrent writes to the same key is accepted.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the store's configured default TTL
//   - Negative: entry never expires
type Store interface {
	// Get retrieves a serialized payload by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a serialized payload with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the store.
	Delete(ctx context.Context, key string) error

	// Ping verifies the store is reachable. Used by readiness checks.
	Ping(ctx context.Context) error

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

// Healthcheck returns a readiness check function for the store.
func Healthcheck(s Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return s.Ping(ctx)
	}
}
