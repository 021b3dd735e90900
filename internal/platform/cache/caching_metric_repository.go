// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"leadswift_backend/internal/feature/analytics/domain/entity"
	"leadswift_backend/internal/feature/analytics/usecase"
)

// DefaultMetricTTL is used when no TTL is given.
const DefaultMetricTTL = 5 * time.Minute

// CachingMetricRepository decorates a MetricRepository with Redis caching.
// A nil Redis client turns it into a pass-through.
type CachingMetricRepository struct {
	inner     usecase.MetricRepository
	rdb       redis.Cmdable
	ttl       time.Duration
	namespace string
}

var _ usecase.MetricRepository = (*CachingMetricRepository)(nil)

// NewCachingMetricRepository decorates inner. If ttl is 0 it defaults to 5 minutes;
// if namespace is empty it uses "metrics".
func NewCachingMetricRepository(rdb redis.Cmdable, ttl time.Duration, inner usecase.MetricRepository, namespace string) *CachingMetricRepository {
	if ttl <= 0 {
		ttl = DefaultMetricTTL
	}
	if namespace == "" {
		namespace = "metrics"
	}
	return &CachingMetricRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertAll writes through and invalidates every cached metric list.
func (c *CachingMetricRepository) UpsertAll(ctx context.Context, metrics []entity.Metric) error {
	if err := c.inner.UpsertAll(ctx, metrics); err != nil {
		return err
	}
	if c.rdb == nil || len(metrics) == 0 {
		return nil
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		// best effort: entries still expire with their TTL
		slog.Warn("metric cache invalidation failed", "error", err)
	}
	return nil
}

// ListActive checks the cache first, then falls back to the inner repository.
func (c *CachingMetricRepository) ListActive(ctx context.Context) ([]entity.Metric, error) {
	if c.rdb == nil {
		return c.inner.ListActive(ctx)
	}

	key := c.activeKey()
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Metric
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingMetricRepository) activeKey() string {
	return c.namespace + ":active"
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingMetricRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}
