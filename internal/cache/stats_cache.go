// Package cache handles Redis caching of computed dashboard statistics.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andy00614/sury-questions/internal/model"
)

const statsKey = "stats:dashboard"

// StatsCache keeps the aggregated dashboard payload out of the hot path.
// A miss returns (nil, nil); the caller recomputes.
type StatsCache interface {
	Get(ctx context.Context) (*model.Statistics, error)
	Set(ctx context.Context, stats *model.Statistics) error
	Invalidate(ctx context.Context) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new statistics cache
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &statsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *statsCache) Get(ctx context.Context) (*model.Statistics, error) {
	data, err := c.client.Get(ctx, statsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.Statistics
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *statsCache) Set(ctx context.Context, stats *model.Statistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, data, c.ttl).Err()
}

// Invalidate drops the cached payload; called after every successful save
func (c *statsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}
