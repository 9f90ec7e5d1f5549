package di

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-company-repository/cache"
	"github.com/goliatone/go-company-repository/internal/cacheinfra"
	"github.com/goliatone/go-company-repository/internal/config"
	"github.com/goliatone/go-company-repository/internal/httpapi"
	"github.com/goliatone/go-company-repository/internal/jobs"
	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/internal/metrics"
	"github.com/goliatone/go-company-repository/internal/store"
	"github.com/goliatone/go-company-repository/repository"
	"github.com/goliatone/go-company-repository/repositorycache"
)

// Container wires the service together. It owns the connection pool, the
// cache backend and the logger; Close releases them.
type Container struct {
	config        config.Config
	log           *logger.Logger
	metrics       *metrics.Metrics
	provider      *store.Provider
	cache         cache.KeyValueCache
	cacheCloser   io.Closer
	keySerializer cache.KeySerializer
	base          *repository.Repository
	cached        *repositorycache.CachedRepository
}

// Option customizes a Container before its components are built.
type Option func(*Container)

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(log *logger.Logger) Option {
	return func(c *Container) {
		c.log = log
	}
}

// NewContainer builds every component from cfg. On failure, anything
// already opened is closed.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		c.log = log
	}

	c.metrics = metrics.New()

	provider, err := store.Open(ctx, cfg.Database, c.log)
	if err != nil {
		return nil, err
	}
	c.provider = provider

	kv, closer, err := cacheinfra.New(ctx, cfg.Cache)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}
	c.cache = kv
	c.cacheCloser = closer

	if cfg.Cache.KeyPrefix != "" {
		c.keySerializer = cache.NewPrefixedKeySerializer(cfg.Cache.KeyPrefix)
	} else {
		c.keySerializer = cache.NewDefaultKeySerializer()
	}

	c.base = repository.New(provider, c.log)
	c.cached = repositorycache.New(c.base, kv,
		repositorycache.WithTTL(cfg.Cache.TTL),
		repositorycache.WithCodec(cfg.Cache.Codec),
		repositorycache.WithKeySerializer(c.keySerializer),
		repositorycache.WithLogger(c.log),
		repositorycache.WithObserver(c.metrics),
	)

	return c, nil
}

// NewContainerWithDefaults builds a container from config.Default().
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, config.Default())
}

func (c *Container) Config() config.Config {
	return c.config
}

func (c *Container) Logger() *logger.Logger {
	return c.log
}

func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *Container) Provider() *store.Provider {
	return c.provider
}

// Cache returns the KeyValueCache backend selected by cfg.Cache.Backend.
func (c *Container) Cache() cache.KeyValueCache {
	return c.cache
}

func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// BaseRepository returns the uncached repository.
func (c *Container) BaseRepository() *repository.Repository {
	return c.base
}

// Repository returns the cached repository used by the HTTP layer.
func (c *Container) Repository() *repositorycache.CachedRepository {
	return c.cached
}

// Router builds the gin engine serving the cached repository.
func (c *Container) Router() *gin.Engine {
	return httpapi.NewRouter(httpapi.RouterConfig{
		CompanyHandler: httpapi.NewCompanyHandler(c.cached, c.log),
		Logger:         c.log,
		Metrics:        c.metrics,
	})
}

// CacheWarmer returns the startup warm-up job bound to the cached repository.
func (c *Container) CacheWarmer() *jobs.CacheWarmer {
	return jobs.NewCacheWarmer(c.cached, c.config.Warmup.Concurrency, c.log)
}

// Close releases the cache backend and the connection pool.
func (c *Container) Close() error {
	var errs []error
	if c.cacheCloser != nil {
		errs = append(errs, c.cacheCloser.Close())
	}
	if c.provider != nil {
		errs = append(errs, c.provider.Close())
	}
	c.log.Sync()
	return errors.Join(errs...)
}
