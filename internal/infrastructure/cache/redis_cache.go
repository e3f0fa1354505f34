package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/cliente"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100
)

// TTL tiers for cached entries
const (
	TTLShort    = 1 * time.Minute
	TTLMedium   = 5 * time.Minute
	TTLLong     = 30 * time.Minute
	TTLVeryLong = 1 * time.Hour
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisCache is a JSON document cache backed by Redis
type RedisCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisCacheOption is a functional option for configuring the cache
type RedisCacheOption func(*RedisCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

// NewRedisCache creates a new Redis-backed cache and verifies the connection
func NewRedisCache(cfg RedisConfig, opts ...RedisCacheOption) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := &RedisCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NewRedisCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisCacheWithClient(client *redis.Client, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetJSON fetches key and unmarshals it into dest, reporting whether the key
// was present. Corrupted entries are dropped and treated as misses.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get key from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Dropping corrupted cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return false, nil
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

// SetJSON marshals value and stores it under key with the given TTL
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key in cache: %w", err)
	}
	return nil
}

// Delete removes a single key; deleting an absent key is not an error
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key from cache: %w", err)
	}
	return nil
}

// DeleteByPattern removes every key matching the glob pattern.
// Uses SCAN in batches to avoid blocking Redis with the KEYS command.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return deletedCount, fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deletedCount, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated cache keys",
		zap.String("pattern", pattern),
		zap.Int64("deleted_count", deletedCount))
	return deletedCount, nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisCache implements cliente.Cache
var _ cliente.Cache = (*RedisCache)(nil)
