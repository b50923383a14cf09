package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freshnest/models"
	"freshnest/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// windowCache is a short-TTL Redis cache for busy-window queries. It only cuts
// request volume for repeated identical queries; the calendar stays the source
// of truth. Cache failures degrade to direct calls, never to request failure.
type windowCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWindowCache builds a busy-window cache on the given Redis client.
func NewWindowCache(client *redis.Client, ttl time.Duration) *windowCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &windowCache{client: client, ttl: ttl}
}

func cacheKey(resourceID string, from, to time.Time) string {
	return fmt.Sprintf("busy:%s:%d:%d", resourceID, from.Unix(), to.Unix())
}

func (c *windowCache) get(ctx context.Context, resourceID string, from, to time.Time) ([]models.AvailabilityWindow, bool) {
	data, err := c.client.Get(ctx, cacheKey(resourceID, from, to)).Result()
	if err != nil {
		return nil, false
	}
	var windows []models.AvailabilityWindow
	if err := json.Unmarshal([]byte(data), &windows); err != nil {
		return nil, false
	}
	return windows, true
}

func (c *windowCache) put(ctx context.Context, resourceID string, from, to time.Time, windows []models.AvailabilityWindow) {
	data, err := json.Marshal(windows)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(resourceID, from, to), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Debug("busy-window cache write failed",
			zap.String("resourceId", resourceID), zap.Error(err))
	}
}

func (c *windowCache) invalidate(ctx context.Context, resourceID string, from, to time.Time) {
	if err := c.client.Del(ctx, cacheKey(resourceID, from, to)).Err(); err != nil {
		utils.GetLogger().Debug("busy-window cache invalidation failed",
			zap.String("resourceId", resourceID), zap.Error(err))
	}
}
