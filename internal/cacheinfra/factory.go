// Package cacheinfra provides the KeyValueCache backends: Redis for shared
// deployments, sturdyc and ristretto for single process use.
package cacheinfra

import (
	"context"
	"io"

	"github.com/goliatone/go-company-repository/cache"
)

// New builds the backend selected by cfg.Backend. The returned closer releases
// backend resources and is never nil.
func New(ctx context.Context, cfg cache.Config) (cache.KeyValueCache, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case cache.BackendRedis:
		r, err := DialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case cache.BackendRistretto:
		r, err := NewRistrettoCache(cfg)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	default:
		m, err := NewMemoryCache(cfg)
		if err != nil {
			return nil, nil, err
		}
		return m, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
