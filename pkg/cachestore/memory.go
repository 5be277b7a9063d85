package cachestore

import (
	"context"
	"sync"
	"time"
)

// memoryEntry holds a payload with its expiration time.
type memoryEntry struct {
	expiresAt time.Time // zero value = never expires
	value     []byte
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory store with TTL-based expiration.
// Expired entries are removed lazily on access and periodically by a
// background janitor goroutine.
//
// Use Memory for development and tests; production deployments should use
// the Redis or Postgres store so cached responses survive process restarts.
type Memory struct {
	items  map[string]*memoryEntry
	opts   *memoryOptions
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemory creates a new in-memory store.
//
// Example:
//
//	s := cachestore.NewMemory(
//	    cachestore.WithDefaultTTL(10 * time.Minute),
//	    cachestore.WithCleanupInterval(time.Minute),
//	)
//	defer s.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items: make(map[string]*memoryEntry),
		opts:  o,
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Get retrieves a payload by key.
// Returns ErrNotFound if the key does not exist or has expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}

	if e.expired(time.Now()) {
		delete(m.items, key)
		return nil, ErrNotFound
	}

	return e.value, nil
}

// Set stores a payload with the given TTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.items[key] = &memoryEntry{value: value, expiresAt: expiresAt}
	return nil
}

// Delete removes a key from the store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.items, key)
	return nil
}

// Ping always succeeds for the in-memory store unless it is closed.
func (m *Memory) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close stops the janitor goroutine and marks the store as closed.
// Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	return nil
}

// janitor periodically removes expired entries.
func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, e := range m.items {
		if e.expired(now) {
			delete(m.items, key)
		}
	}
}

var _ Store = (*Memory)(nil)
