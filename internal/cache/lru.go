package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is a bounded in-process cache. Entries expire after ttl; ttl <= 0 keeps them until evicted.
type LRU[V any] struct {
	store *expirable.LRU[string, V]
}

func NewLRU[V any](size int, ttl time.Duration) *LRU[V] {
	if size < 1 {
		size = 1
	}
	return &LRU[V]{store: expirable.NewLRU[string, V](size, nil, ttl)}
}

func (c *LRU[V]) Get(_ context.Context, key string) (V, bool) {
	return c.store.Get(key)
}

func (c *LRU[V]) Set(_ context.Context, key string, value V) {
	c.store.Add(key, value)
}

func (c *LRU[V]) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		c.store.Remove(k)
	}
}

// Len reports the number of live entries.
func (c *LRU[V]) Len() int {
	return c.store.Len()
}
