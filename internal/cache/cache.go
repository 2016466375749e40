// Package cache provides the lookup caches that sit in front of single-record reads.
//
// Every backend is best effort: a failing cache behaves like an empty one and
// never fails the caller.
package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"mindful/internal/config"
)

// Cache is a keyed store of V values.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V)
	Delete(ctx context.Context, keys ...string)
}

// Recorder receives one call per Get.
type Recorder interface {
	CacheLookup(cache string, hit bool)
}

// New builds the backend selected by cfg. name namespaces keys in shared
// backends and labels lookups. client may be nil unless cfg selects redis.
func New[V any](cfg config.Cache, name string, client *redis.Client, logger *slog.Logger) Cache[V] {
	switch cfg.Backend {
	case config.CacheNone:
		return Noop[V]{}
	case config.CacheRedis:
		if client != nil {
			return NewRedis[V](client, name, cfg.TTL, logger)
		}
		logger.Warn("Redis cache requested without a client, falling back to in-process LRU", "cache", name)
	}
	return NewLRU[V](cfg.Size, cfg.TTL)
}

// Noop caches nothing.
type Noop[V any] struct{}

func (Noop[V]) Get(context.Context, string) (V, bool) {
	var zero V
	return zero, false
}

func (Noop[V]) Set(context.Context, string, V) {}

func (Noop[V]) Delete(context.Context, ...string) {}

// Instrumented reports every Get of next to rec.
type Instrumented[V any] struct {
	next Cache[V]
	name string
	rec  Recorder
}

func Instrument[V any](next Cache[V], name string, rec Recorder) *Instrumented[V] {
	return &Instrumented[V]{next: next, name: name, rec: rec}
}

func (c *Instrumented[V]) Get(ctx context.Context, key string) (V, bool) {
	v, ok := c.next.Get(ctx, key)
	c.rec.CacheLookup(c.name, ok)
	return v, ok
}

func (c *Instrumented[V]) Set(ctx context.Context, key string, value V) {
	c.next.Set(ctx, key, value)
}

func (c *Instrumented[V]) Delete(ctx context.Context, keys ...string) {
	c.next.Delete(ctx, keys...)
}
