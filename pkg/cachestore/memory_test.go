package cachestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/frontman/pkg/cachestore"
)

func TestMemory_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		s := cachestore.NewMemory()
		defer s.Close()

		_, err := s.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cachestore.ErrNotFound)
	})

	t.Run("returns stored payload", func(t *testing.T) {
		t.Parallel()

		s := cachestore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "key", []byte("payload"), time.Minute))

		v, err := s.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, []byte("payload"), v)
	})

	t.Run("returns ErrNotFound for expired key", func(t *testing.T) {
		t.Parallel()

		s := cachestore.NewMemory(cachestore.WithCleanupInterval(0))
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "key", []byte("payload"), time.Millisecond))

		time.Sleep(5 * time.Millisecond)

		_, err := s.Get(ctx, "key")
		require.ErrorIs(t, err, cachestore.ErrNotFound)
	})
}

func TestMemory_Set(t *testing.T) {
	t.Parallel()

	t.Run("zero TTL uses default", func(t *testing.T) {
		t.Parallel()

		s := cachestore.NewMemory(
			cachestore.WithDefaultTTL(50*time.Millisecond),
			cachestore.WithCleanupInterval(0),
		)
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "key", []byte("v"), 0))

		_, err := s.Get(ctx, "key")
		require.NoError(t, err)

		time.Sleep(60 * time.Millisecond)

		_, err = s.Get(ctx, "key")
		require.ErrorIs(t, err, cachestore.ErrNotFound)
	})

	t.Run("negative TTL never expires", func(t *testing.T) {
		t.Parallel()

		s := cachestore.NewMemory(
			cachestore.WithDefaultTTL(time.Millisecond),
			cachestore.WithCleanupInterval(0),
		)
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "key", []byte("v"), -1))

		time.Sleep(5 * time.Millisecond)

		_, err := s.Get(ctx, "key")
		require.NoError(t, err)
	})

	t.Run("overwrites existing entry", func(t *testing.T) {
		t.Parallel()

		s := cachestore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "key", []byte("one"), time.Minute))
		require.NoError(t, s.Set(ctx, "key", []byte("two"), time.Minute))

		v, err := s.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, []byte("two"), v)
	})
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	s := cachestore.NewMemory()
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "key", []byte("v"), time.Minute))
	require.NoError(t, s.Delete(ctx, "key"))

	_, err := s.Get(ctx, "key")
	require.ErrorIs(t, err, cachestore.ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, s.Delete(ctx, "missing"))
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	s := cachestore.NewMemory()

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")

	require.ErrorIs(t, s.Ping(context.Background()), cachestore.ErrClosed)
	require.ErrorIs(t, s.Set(context.Background(), "k", nil, 0), cachestore.ErrClosed)

	_, err := s.Get(context.Background(), "k")
	require.ErrorIs(t, err, cachestore.ErrClosed)
}
