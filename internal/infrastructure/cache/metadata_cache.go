package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidcatalog/internal/domain/model"
)

// metadataCacheKeyPrefix is the prefix for metadata record keys in Redis.
const metadataCacheKeyPrefix = "videometa:"

// MetadataCache defines the interface for caching video metadata records.
// Implementations handle serialization transparently.
type MetadataCache interface {
	// Get retrieves a record from cache by video key.
	// Returns nil, nil on cache miss.
	Get(ctx context.Context, videoKey string) (*model.VideoMetadata, error)

	// Set stores a record in cache with the specified TTL.
	Set(ctx context.Context, record *model.VideoMetadata, ttl time.Duration) error

	// Delete removes a record from cache by video key.
	// Returns nil if the record was not cached.
	Delete(ctx context.Context, videoKey string) error
}

// RedisMetadataCache implements MetadataCache using Redis as the backing store.
type RedisMetadataCache struct {
	client *redis.Client
}

// NewRedisMetadataCache creates a new Redis-backed metadata cache.
func NewRedisMetadataCache(client *redis.Client) *RedisMetadataCache {
	return &RedisMetadataCache{client: client}
}

// Get retrieves a record from Redis cache. Returns nil, nil on cache miss.
func (c *RedisMetadataCache) Get(ctx context.Context, videoKey string) (*model.VideoMetadata, error) {
	data, err := c.client.Get(ctx, c.buildKey(videoKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var record model.VideoMetadata
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("deserialize metadata record: %w", err)
	}
	return &record, nil
}

// Set stores a record in Redis cache with the specified TTL.
func (c *RedisMetadataCache) Set(ctx context.Context, record *model.VideoMetadata, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("serialize metadata record: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(record.VideoKey), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a record from Redis cache.
func (c *RedisMetadataCache) Delete(ctx context.Context, videoKey string) error {
	if err := c.client.Del(ctx, c.buildKey(videoKey)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *RedisMetadataCache) buildKey(videoKey string) string {
	return metadataCacheKeyPrefix + videoKey
}
