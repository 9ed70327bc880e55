package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sumsori/sumsori-api/internal/models"
)

const sharedCardTTL = 10 * time.Minute

// Cache fronts the share view with Redis and backs the rate limiter.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("[Cache] Connected to Redis")
	return &Cache{client: client}, nil
}

func sharedCardKey(cardID string) string {
	return "shared_card:" + cardID
}

// GetSharedCard returns the cached public view, or nil on miss.
func (c *Cache) GetSharedCard(ctx context.Context, cardID string) (*models.SharedCard, error) {
	data, err := c.client.Get(ctx, sharedCardKey(cardID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached card: %w", err)
	}

	var card models.SharedCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to decode cached card: %w", err)
	}
	return &card, nil
}

// SetSharedCard caches the public view for the share endpoint.
func (c *Cache) SetSharedCard(ctx context.Context, card *models.SharedCard) error {
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to encode card for cache: %w", err)
	}
	if err := c.client.Set(ctx, sharedCardKey(card.ID), data, sharedCardTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache card: %w", err)
	}
	return nil
}

// InvalidateCard drops the cached view after a mutation.
func (c *Cache) InvalidateCard(ctx context.Context, cardID string) error {
	if err := c.client.Del(ctx, sharedCardKey(cardID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached card: %w", err)
	}
	return nil
}

// Allow implements a fixed-window rate limit keyed by caller identity.
// The first hit in a window sets the expiry; counting errors fail open
// so a Redis outage does not block generation.
func (c *Cache) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	redisKey := "ratelimit:" + key

	count, err := c.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("[Cache] Rate limit check failed for %s: %v", key, err)
		return true
	}
	if count == 1 {
		if err := c.client.Expire(ctx, redisKey, window).Err(); err != nil {
			log.Printf("[Cache] Failed to set rate limit window for %s: %v", key, err)
		}
	}
	return count <= int64(limit)
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
