package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/frontman/pkg/sanitizer"
)

func TestStrip(t *testing.T) {
	t.Parallel()

	t.Run("removes script tags", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "a@b.com", sanitizer.Strip(`<script>alert(1)</script>a@b.com`))
	})

	t.Run("removes markup but keeps text", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "hello world", sanitizer.Strip(`<b>hello</b> <i>world</i>`))
	})

	t.Run("plain text passes through", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "just text & symbols", sanitizer.Strip("just text & symbols"))
	})
}

func TestStripArgs(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes string values only", func(t *testing.T) {
		t.Parallel()

		args := sanitizer.StripArgs(map[string]any{
			"name":  `<img src=x onerror=alert(1)>Eve`,
			"count": 3,
			"tags":  []any{"<b>a</b>"},
		})

		require.Equal(t, "Eve", args["name"])
		require.Equal(t, 3, args["count"])
		require.Equal(t, []any{"<b>a</b>"}, args["tags"], "nested values untouched")
	})

	t.Run("nil map stays nil", func(t *testing.T) {
		t.Parallel()

		require.Nil(t, sanitizer.StripArgs(nil))
	})
}
