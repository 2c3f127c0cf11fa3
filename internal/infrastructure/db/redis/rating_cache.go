package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/afoninsb/api-yamdb/internal/api/metrics"
)

const ratingTTL = 10 * time.Minute

// noRating marks a cached "title has no reviews" result, so the aggregation
// is not re-run for every read of an unreviewed title.
const noRating = "none"

// RatingCache caches derived title ratings in Redis.
// Key format: rating:<title_id>
type RatingCache struct {
	client *redis.Client
}

// NewRatingCache creates a RatingCache wrapping the given Redis client.
func NewRatingCache(client *redis.Client) *RatingCache {
	return &RatingCache{client: client}
}

// Get returns the cached rating for a title. ok is false on a cache miss.
// A nil rating with ok=true means "no reviews yet" was cached.
func (c *RatingCache) Get(ctx context.Context, titleID string) (*int, bool, error) {
	val, err := c.client.Get(ctx, c.key(titleID)).Result()
	if err == redis.Nil {
		metrics.RatingCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rating get: %w", err)
	}

	metrics.RatingCacheTotal.WithLabelValues("hit").Inc()
	if val == noRating {
		return nil, true, nil
	}

	rating, err := strconv.Atoi(val)
	if err != nil {
		// stale or corrupt entry, treat as a miss
		return nil, false, nil
	}
	return &rating, true, nil
}

// Set stores the rating for a title (expires after ratingTTL).
func (c *RatingCache) Set(ctx context.Context, titleID string, rating *int) error {
	val := noRating
	if rating != nil {
		val = strconv.Itoa(*rating)
	}
	return c.client.Set(ctx, c.key(titleID), val, ratingTTL).Err()
}

// Invalidate drops the cached rating; the next read recomputes it.
func (c *RatingCache) Invalidate(ctx context.Context, titleID string) error {
	return c.client.Del(ctx, c.key(titleID)).Err()
}

func (c *RatingCache) key(titleID string) string {
	return fmt.Sprintf("rating:%s", titleID)
}
