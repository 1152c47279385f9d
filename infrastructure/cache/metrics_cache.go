package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"social-dashboard/domain/model"
)

const metricsKeyPrefix = "metrics:"

// MetricsCache keeps the latest extraction per canonical URL so repeated
// lookups within the TTL skip the scraping providers entirely.
// A nil Redis client disables it; every method then reports a miss.
type MetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMetricsCache(client *redis.Client, ttl time.Duration) *MetricsCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MetricsCache{client: client, ttl: ttl}
}

func (c *MetricsCache) Get(ctx context.Context, canonicalURL string) (model.MetricsResult, bool) {
	if c.client == nil {
		return model.MetricsResult{}, false
	}
	raw, err := c.client.Get(ctx, metricsKeyPrefix+canonicalURL).Bytes()
	if err != nil {
		return model.MetricsResult{}, false
	}
	var res model.MetricsResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return model.MetricsResult{}, false
	}
	return res, true
}

func (c *MetricsCache) Set(ctx context.Context, canonicalURL string, res model.MetricsResult) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, metricsKeyPrefix+canonicalURL, raw, c.ttl).Err()
}

func (c *MetricsCache) Invalidate(ctx context.Context, canonicalURL string) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, metricsKeyPrefix+canonicalURL).Err()
}
