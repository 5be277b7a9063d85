package nonce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/frontman/pkg/nonce"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()

		_, err := nonce.New("")
		require.ErrorIs(t, err, nonce.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()

		_, err := nonce.New("too-short")
		require.ErrorIs(t, err, nonce.ErrBadSecret)
	})
}

func TestManager_Verify(t *testing.T) {
	t.Parallel()

	t.Run("accepts a freshly issued token", func(t *testing.T) {
		t.Parallel()

		m, err := nonce.New(testSecret)
		require.NoError(t, err)

		token := m.Issue("save", "user-7")
		require.True(t, m.Verify(token, "save", "user-7"))
	})

	t.Run("rejects a token for another action", func(t *testing.T) {
		t.Parallel()

		m, err := nonce.New(testSecret)
		require.NoError(t, err)

		token := m.Issue("save", "user-7")
		require.False(t, m.Verify(token, "delete", "user-7"))
	})

	t.Run("rejects a token for another principal", func(t *testing.T) {
		t.Parallel()

		m, err := nonce.New(testSecret)
		require.NoError(t, err)

		token := m.Issue("save", "user-7")
		require.False(t, m.Verify(token, "save", "user-8"))
	})

	t.Run("rejects empty and garbage tokens", func(t *testing.T) {
		t.Parallel()

		m, err := nonce.New(testSecret)
		require.NoError(t, err)

		require.False(t, m.Verify("", "save", "user-7"))
		require.False(t, m.Verify("not-a-token", "save", "user-7"))
	})

	t.Run("accepts tokens from the previous window", func(t *testing.T) {
		t.Parallel()

		base := time.Now()
		clock := base

		m, err := nonce.New(testSecret,
			nonce.WithLifetime(time.Hour),
			nonce.WithClock(func() time.Time { return clock }),
		)
		require.NoError(t, err)

		token := m.Issue("save", "user-7")

		clock = base.Add(time.Hour)
		require.True(t, m.Verify(token, "save", "user-7"), "previous window still accepted")

		clock = base.Add(3 * time.Hour)
		require.False(t, m.Verify(token, "save", "user-7"), "expired after two windows")
	})
}
