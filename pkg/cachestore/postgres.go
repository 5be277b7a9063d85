package cachestore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the response cache table.
// Apply it with your migration tooling before using the Postgres store.
const Schema = `
CREATE TABLE IF NOT EXISTS response_cache (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    expires_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS response_cache_expires_at_idx ON response_cache (expires_at);
`

// Postgres is a store backed by a PostgreSQL table. It suits deployments
// that already run Postgres and do not want a separate Redis instance.
// The pool lifecycle is managed by the caller; Close on the store is a no-op.
type Postgres struct {
	pool       *pgxpool.Pool
	defaultTTL time.Duration
}

// PostgresOption configures the Postgres store.
type PostgresOption func(*Postgres)

// WithPostgresDefaultTTL sets the expiration applied when Set is called with
// a zero TTL. Default: 1 hour.
func WithPostgresDefaultTTL(d time.Duration) PostgresOption {
	return func(p *Postgres) {
		p.defaultTTL = d
	}
}

// NewPostgres creates a new Postgres-backed store.
func NewPostgres(pool *pgxpool.Pool, opts ...PostgresOption) *Postgres {
	p := &Postgres{
		pool:       pool,
		defaultTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get retrieves a payload by key.
// Returns ErrNotFound if the key does not exist or has expired.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM response_cache WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set stores a payload with the given TTL using an upsert, so concurrent
// writers follow last-writer-wins semantics.
func (p *Postgres) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = p.defaultTTL
	}

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO response_cache (key, value, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		key, value, expiresAt,
	)
	return err
}

// Delete removes a key from the store.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM response_cache WHERE key = $1`, key)
	return err
}

// DeleteExpired removes all expired entries. Run it periodically from the
// host's scheduler; reads already ignore expired rows.
func (p *Postgres) DeleteExpired(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM response_cache WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	return err
}

// Ping verifies the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close is a no-op; the pool is owned by the caller.
func (p *Postgres) Close() error {
	return nil
}

var _ Store = (*Postgres)(nil)
