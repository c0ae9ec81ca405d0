package social

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wanderlist/internal/platform/redis"
	id "wanderlist/pkg/domain"
)

// CountCache keeps follower/following totals in Redis so profile pages do
// not hit two COUNT queries per render. A nil cache is valid and misses on
// every read, which keeps the service runnable without Redis.
type CountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCountCache(client *redis.Client, ttl time.Duration) *CountCache {
	if client == nil {
		return nil
	}
	return &CountCache{client: client, ttl: ttl}
}

func countKey(userID id.UserID) string {
	return fmt.Sprintf("social:counts:%s", userID)
}

// Get returns the cached counts, or ok=false on a miss. Redis errors are
// treated as misses; the store is always authoritative.
func (c *CountCache) Get(ctx context.Context, userID id.UserID) (Counts, bool) {
	if c == nil {
		return Counts{}, false
	}
	raw, err := c.client.Get(ctx, countKey(userID)).Bytes()
	if err != nil {
		return Counts{}, false
	}
	var counts Counts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return Counts{}, false
	}
	return counts, true
}

// Set stores the counts with the configured TTL.
func (c *CountCache) Set(ctx context.Context, userID id.UserID, counts Counts) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, countKey(userID), raw, c.ttl).Err()
}

// Invalidate drops the cached counts for the given users. Called on every
// follow and unfollow for both ends of the edge.
func (c *CountCache) Invalidate(ctx context.Context, userIDs ...id.UserID) {
	if c == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, userID := range userIDs {
		keys[i] = countKey(userID)
	}
	_ = c.client.Del(ctx, keys...).Err()
}
