//go:build integration

package social_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformredis "wanderlist/internal/platform/redis"
	"wanderlist/internal/social"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/testutil/containers"
)

func TestCountCache_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redisC := containers.NewRedisContainer(t)
	client := &platformredis.Client{Client: redisC.Client}

	t.Run("round trips counts", func(t *testing.T) {
		require.NoError(t, redisC.FlushAll(ctx))
		cache := social.NewCountCache(client, time.Minute)
		userID := id.NewUserID()

		_, ok := cache.Get(ctx, userID)
		assert.False(t, ok, "cold cache misses")

		want := social.Counts{Followers: 3, Following: 7}
		cache.Set(ctx, userID, want)

		got, ok := cache.Get(ctx, userID)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("invalidate drops both users", func(t *testing.T) {
		require.NoError(t, redisC.FlushAll(ctx))
		cache := social.NewCountCache(client, time.Minute)
		followerID := id.NewUserID()
		followedID := id.NewUserID()
		bystanderID := id.NewUserID()

		cache.Set(ctx, followerID, social.Counts{Following: 1})
		cache.Set(ctx, followedID, social.Counts{Followers: 1})
		cache.Set(ctx, bystanderID, social.Counts{Followers: 9})

		cache.Invalidate(ctx, followerID, followedID)

		_, ok := cache.Get(ctx, followerID)
		assert.False(t, ok)
		_, ok = cache.Get(ctx, followedID)
		assert.False(t, ok)
		_, ok = cache.Get(ctx, bystanderID)
		assert.True(t, ok, "untouched user keeps their entry")
	})

	t.Run("entries expire with the TTL", func(t *testing.T) {
		require.NoError(t, redisC.FlushAll(ctx))
		cache := social.NewCountCache(client, 500*time.Millisecond)
		userID := id.NewUserID()

		cache.Set(ctx, userID, social.Counts{Followers: 1})
		_, ok := cache.Get(ctx, userID)
		require.True(t, ok)

		assert.Eventually(t, func() bool {
			_, ok := cache.Get(ctx, userID)
			return !ok
		}, 3*time.Second, 100*time.Millisecond, "entry expires")
	})
}
