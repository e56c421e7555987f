package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/dentalcalc/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklisted JTI is reported until it expires", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown JTI is not blacklisted", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		revoked, err := blacklist.IsBlacklisted(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired entry is evicted", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", time.Nanosecond))
		time.Sleep(10 * time.Millisecond)

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-3", 0))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
