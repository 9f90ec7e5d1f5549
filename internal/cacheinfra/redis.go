package cacheinfra

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-company-repository/cache"
)

// ErrNilClient is returned when a RedisCache is built without a client.
var ErrNilClient = errors.New("redis cache: nil client")

var _ cache.KeyValueCache = (*RedisCache)(nil)

// RedisCache is the distributed KeyValueCache. Entries are written with
// SET key value EX ttl, so expiration is absolute from the write time.
type RedisCache struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

// NewRedisCache wraps an existing client. closeClient should only be true when
// the cache exclusively owns the client.
func NewRedisCache(rdb goredis.UniversalClient, closeClient bool) (*RedisCache, error) {
	if rdb == nil {
		return nil, ErrNilClient
	}
	return &RedisCache{rdb: rdb, closeClient: closeClient}, nil
}

// DialRedis builds a client from cfg and verifies connectivity.
func DialRedis(ctx context.Context, cfg cache.RedisConfig) (*RedisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewRedisCache(rdb, true)
}

// GetString implements cache.KeyValueCache.
func (r *RedisCache) GetString(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetString implements cache.KeyValueCache.
func (r *RedisCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

// Close releases the client when this cache owns it.
func (r *RedisCache) Close() error {
	if !r.closeClient {
		return nil
	}
	if err := r.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
