package cacheinfra

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/goliatone/go-company-repository/cache"
)

var _ cache.KeyValueCache = (*RistrettoCache)(nil)

// RistrettoCache is an in-process KeyValueCache with per entry expiration.
type RistrettoCache struct {
	store *ristretto.Cache
}

// NewRistrettoCache sizes the admission counters at ten times the capacity,
// as recommended by ristretto, and uses one unit of cost per entry.
func NewRistrettoCache(cfg cache.Config) (*RistrettoCache, error) {
	if cfg.Memory.Capacity <= 0 {
		return nil, &cache.ConfigError{Field: "Memory.Capacity", Message: "must be greater than 0"}
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.Memory.Capacity) * 10,
		MaxCost:     int64(cfg.Memory.Capacity),
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoCache{store: store}, nil
}

// GetString implements cache.KeyValueCache.
func (r *RistrettoCache) GetString(_ context.Context, key string) (string, bool, error) {
	v, ok := r.store.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

// SetString implements cache.KeyValueCache. Writes are buffered by ristretto;
// Wait makes them visible before returning so a read right after a fill hits.
func (r *RistrettoCache) SetString(_ context.Context, key, value string, ttl time.Duration) error {
	r.store.SetWithTTL(key, value, 1, ttl)
	r.store.Wait()
	return nil
}

// Close stops ristretto's background goroutines.
func (r *RistrettoCache) Close() error {
	r.store.Close()
	return nil
}
