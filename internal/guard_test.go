package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReplyCacheKey(t *testing.T) {
	t.Parallel()

	t.Run("default key is identity and action name", func(t *testing.T) {
		t.Parallel()
		g := CacheReply(time.Minute)
		act := NewActionRequest("getStats", nil)
		require.Equal(t, "view:stats:getStats", g.replyCacheKey("view:stats", "getStats", act))
	})

	t.Run("explicit key overrides the default", func(t *testing.T) {
		t.Parallel()
		g := CacheReplyKeyed("custom", time.Minute)
		act := NewActionRequest("getStats", nil)
		require.Equal(t, "custom", g.replyCacheKey("view:stats", "getStats", act))
	})

	t.Run("vary-by values append in declared order", func(t *testing.T) {
		t.Parallel()
		g := CacheReply(time.Minute, "user_id", "scope")
		act := NewActionRequest("getStats", map[string]any{
			"scope":   "month",
			"user_id": 7,
		})
		require.Equal(t, "view:stats:getStats:7:month", g.replyCacheKey("view:stats", "getStats", act))
	})

	t.Run("absent argument does not collide with a nil-looking value", func(t *testing.T) {
		t.Parallel()
		g := CacheReply(time.Minute, "user_id")

		absent := NewActionRequest("getStats", nil)
		nilish := NewActionRequest("getStats", map[string]any{"user_id": "<nil>"})

		require.Equal(t, "view:stats:getStats:", g.replyCacheKey("view:stats", "getStats", absent))
		require.NotEqual(t,
			g.replyCacheKey("view:stats", "getStats", absent),
			g.replyCacheKey("view:stats", "getStats", nilish),
		)
	})
}
