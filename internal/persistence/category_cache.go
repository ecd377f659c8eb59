package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

const categoryCacheKey = "helpdesk:categories"

// CategoryCache is a read-through Redis cache for the category catalog.
// The ticket form fetches the full catalog on every load, so the list is
// cached and invalidated on any catalog mutation. Cache failures degrade
// to the database.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCategoryCache builds the cache around an existing Redis connection.
func NewCategoryCache(r *Redis, ttl time.Duration, logger *zap.Logger) *CategoryCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &CategoryCache{client: r.Client, ttl: ttl, logger: logger}
}

// Get returns the cached catalog, or (nil, false) on miss or error.
func (c *CategoryCache) Get(ctx context.Context) ([]domain.Category, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("category cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		c.logger.Warn("category cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return categories, true
}

// Set stores the catalog with the configured TTL.
func (c *CategoryCache) Set(ctx context.Context, categories []domain.Category) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, categoryCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("category cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached catalog.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, categoryCacheKey).Err(); err != nil {
		c.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
