package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisCache implements Cache over a redis instance.
type redisCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedis creates a redis-backed cache and verifies connectivity.
func NewRedis(ctx context.Context, addr, password string, db int, logger zerolog.Logger) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger = logger.With().Str("component", "redis-cache").Logger()
	logger.Info().Str("addr", addr).Msg("redis cache connected")

	return &redisCache{
		client: client,
		logger: logger,
	}, nil
}

// Get returns the cached payload and whether it was present.
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}
	return data, true, nil
}

// Set stores a payload under key for ttl.
func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *redisCache) Close() error {
	return c.client.Close()
}
