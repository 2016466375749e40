package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mindful/internal/config"
)

// Redis stores JSON-encoded values under "<prefix>:<key>".
type Redis[V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis[V any](client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *Redis[V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis[V]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// NewRedisClient connects to cfg and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// Connect prepares the backend cfg selects. For redis it returns a connected
// client; when Redis is unreachable the failure is logged once and the
// returned settings fall back to the in-process LRU.
func Connect(ctx context.Context, cfg config.Cache, redisCfg config.Redis, logger *slog.Logger) (config.Cache, *redis.Client) {
	if cfg.Backend != config.CacheRedis {
		return cfg, nil
	}

	client, err := NewRedisClient(ctx, redisCfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", "addr", redisCfg.Addr, "error", err)
		cfg.Backend = config.CacheLRU
		return cfg, nil
	}
	return cfg, client
}

func (c *Redis[V]) key(k string) string {
	return c.prefix + ":" + k
}

func (c *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var v V

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false
	}
	if err != nil {
		c.logger.Warn("Cache read failed", "key", c.key(key), "error", err)
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("Cache entry is not decodable, dropping it", "key", c.key(key), "error", err)
		c.Delete(ctx, key)
		return v, false
	}
	return v, true
}

func (c *Redis[V]) Set(ctx context.Context, key string, value V) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache entry is not encodable", "key", c.key(key), "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", "key", c.key(key), "error", err)
	}
}

func (c *Redis[V]) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", "keys", full, "error", err)
	}
}
