package cacheinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-company-repository/cache"
)

var _ cache.KeyValueCache = (*MemoryCache)(nil)

// MemoryCache is an in-process KeyValueCache backed by a sturdyc client.
// sturdyc applies a single TTL to every entry, fixed when the client is built.
type MemoryCache struct {
	client *sturdyc.Client[string]
	ttl    time.Duration
}

// NewMemoryCache validates cfg and builds a sharded sturdyc client.
func NewMemoryCache(cfg cache.Config) (*MemoryCache, error) {
	if cfg.Memory.Capacity <= 0 {
		return nil, &cache.ConfigError{Field: "Memory.Capacity", Message: "must be greater than 0"}
	}
	if cfg.Memory.NumShards <= 0 {
		return nil, &cache.ConfigError{Field: "Memory.NumShards", Message: "must be greater than 0"}
	}
	if cfg.TTL <= 0 {
		return nil, &cache.ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if cfg.Memory.EvictionPercentage < 1 || cfg.Memory.EvictionPercentage > 100 {
		return nil, &cache.ConfigError{Field: "Memory.EvictionPercentage", Message: "must be between 1 and 100"}
	}

	client := sturdyc.New[string](
		cfg.Memory.Capacity,
		cfg.Memory.NumShards,
		cfg.TTL,
		cfg.Memory.EvictionPercentage,
	)

	return &MemoryCache{client: client, ttl: cfg.TTL}, nil
}

// GetString implements cache.KeyValueCache.
func (m *MemoryCache) GetString(_ context.Context, key string) (string, bool, error) {
	value, ok := m.client.Get(key)
	return value, ok, nil
}

// SetString implements cache.KeyValueCache. The ttl must match the client TTL.
func (m *MemoryCache) SetString(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl != m.ttl {
		return fmt.Errorf("memory cache: ttl %s differs from configured ttl %s", ttl, m.ttl)
	}
	m.client.Set(key, value)
	return nil
}

// Len reports the number of live entries.
func (m *MemoryCache) Len() int {
	return m.client.Size()
}
