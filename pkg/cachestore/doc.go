// Package cachestore provides the keyed store of serialized responses used
// by the reply cache, with in-memory, Redis and Postgres backends.
//
// All backends implement the [Store] interface:
//
//   - Get(ctx, key) ([]byte, error) — retrieve a payload
//   - Set(ctx, key, value, ttl) error — store a payload with TTL
//   - Delete(ctx, key) error — remove a key
//   - Ping(ctx) error — readiness probe
//   - Close() error — release resources
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the store's configured default TTL (1 hour by default)
//   - Negative: entry never expires
//
// The store only deals in opaque bytes; response serialization is the
// dispatcher's concern. Stores must provide atomic get/set per key.
// Concurrent writers to the same key follow last-writer-wins.
//
// Use [NewMemory] for development and tests, [NewRedis] or [NewPostgres] in
// production so cached responses outlive a single process.
package cachestore
