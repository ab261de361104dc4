package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/api/metrics"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

const subscriptionCacheTTL = 5 * time.Minute

// SubscriptionCache stores resolved subscription records per user id.
// Cache failures degrade to misses; they never reach the caller.
type SubscriptionCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSubscriptionCache(client *redis.Client, log zerolog.Logger) *SubscriptionCache {
	return &SubscriptionCache{client: client, log: log}
}

func (c *SubscriptionCache) key(userID string) string {
	return "subscription:" + userID
}

func (c *SubscriptionCache) Get(ctx context.Context, userID string) (*domain.SubscriptionRecord, bool) {
	raw, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("user_id", userID).Msg("subscription cache: read failed")
		}
		metrics.SubscriptionCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var record domain.SubscriptionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("subscription cache: corrupt entry dropped")
		_ = c.client.Del(ctx, c.key(userID)).Err()
		metrics.SubscriptionCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.SubscriptionCacheTotal.WithLabelValues("hit").Inc()
	return &record, true
}

func (c *SubscriptionCache) Put(ctx context.Context, userID string, record *domain.SubscriptionRecord) {
	raw, err := json.Marshal(record)
	if err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("subscription cache: encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(userID), raw, subscriptionCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("subscription cache: write failed")
	}
}

func (c *SubscriptionCache) Drop(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("subscription cache: invalidation failed")
	}
}
