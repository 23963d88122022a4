// Package cache provides the Redis access layer of the service.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

// ErrNoAddress is returned by NewCache when Redis is not configured.
var ErrNoAddress = errors.New("redis address is not configured")

// Cache wraps a Redis client.
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewCache connects to Redis and verifies the connection.
func NewCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (*Cache, error) {
	if cfg.RedisAddress == "" {
		return nil, ErrNoAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.RedisAddress,
		Password:        cfg.RedisPassword,
		DB:              cfg.RedisDB,
		PoolSize:        10,
		MinIdleConns:    2,
		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Err(err).Str("func", "NewCache").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	log.Info().Str("func", "NewCache").Msg("connected to redis successfully")

	return NewCacheFromClient(client, log), nil
}

// NewCacheFromClient wraps an existing client.
func NewCacheFromClient(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{client: client, logger: log}
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
