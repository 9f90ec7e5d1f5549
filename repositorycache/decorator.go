package repositorycache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-company-repository/cache"
	"github.com/goliatone/go-company-repository/company"
	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/repository"
)

// Interface assertion to ensure CachedRepository implements CompanyRepository
var _ repository.CompanyRepository = (*CachedRepository)(nil)

// Lookup outcomes reported to the Observer.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
	ResultFill = "fill"
)

// Cached operations as reported to the Observer.
const (
	OpGetCompanies           = "get_companies"
	OpGetCompany             = "get_company"
	OpGetCompanyByEmployeeID = "get_company_by_employee_id"
)

// Observer receives one call per cache lookup outcome. internal/metrics
// provides a prometheus backed implementation.
type Observer interface {
	ObserveCacheLookup(operation, result string)
}

// Stats is a snapshot of the decorator counters.
type Stats struct {
	Hits   int64
	Misses int64
	Fills  int64
}

// CachedRepository decorates a base repository with cache-aside reads.
type CachedRepository struct {
	base          repository.CompanyRepository
	cache         cache.KeyValueCache
	keySerializer cache.KeySerializer
	ttl           time.Duration
	listCodec     cache.Codec[[]company.Company]
	itemCodec     cache.Codec[company.Company]
	log           *logger.Logger
	observer      Observer

	hits   *xsync.Counter
	misses *xsync.Counter
	fills  *xsync.Counter
}

// Option configures a CachedRepository.
type Option func(*CachedRepository)

// WithTTL overrides cache.DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *CachedRepository) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCodec selects the payload codec by name (cache.CodecJSON or cache.CodecMsgpack).
func WithCodec(name string) Option {
	return func(c *CachedRepository) {
		c.listCodec = cache.NewCodec[[]company.Company](name)
		c.itemCodec = cache.NewCodec[company.Company](name)
	}
}

// WithKeySerializer replaces the default key serializer.
func WithKeySerializer(ks cache.KeySerializer) Option {
	return func(c *CachedRepository) {
		if ks != nil {
			c.keySerializer = ks
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *CachedRepository) {
		if log != nil {
			c.log = log
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *CachedRepository) {
		c.observer = o
	}
}

// New creates a new CachedRepository that wraps the base repository with caching
func New(base repository.CompanyRepository, kv cache.KeyValueCache, opts ...Option) *CachedRepository {
	c := &CachedRepository{
		base:          base,
		cache:         kv,
		keySerializer: cache.NewDefaultKeySerializer(),
		ttl:           cache.DefaultTTL,
		listCodec:     cache.JSONCodec[[]company.Company]{},
		itemCodec:     cache.JSONCodec[company.Company]{},
		log:           logger.NewNop(),
		hits:          xsync.NewCounter(),
		misses:        xsync.NewCounter(),
		fills:         xsync.NewCounter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "repositorycache")
	return c
}

// Stats returns the hit, miss and fill counters.
func (c *CachedRepository) Stats() Stats {
	return Stats{
		Hits:   c.hits.Value(),
		Misses: c.misses.Value(),
		Fills:  c.fills.Value(),
	}
}

// GetCompanies returns the cached company list, loading it on a miss. An
// empty list is cached like any other.
func (c *CachedRepository) GetCompanies(ctx context.Context) ([]company.Company, error) {
	key := c.keySerializer.SerializeKey(cache.AllCompaniesKey)
	companies, _, err := getOrLoad(ctx, c, OpGetCompanies, key, c.listCodec,
		func(ctx context.Context) ([]company.Company, bool, error) {
			companies, err := c.base.GetCompanies(ctx)
			return companies, err == nil, err
		})
	return companies, err
}

// GetCompany returns the cached company for id. Absent companies are not cached.
func (c *CachedRepository) GetCompany(ctx context.Context, id int) (*company.Company, error) {
	key := c.keySerializer.SerializeKey(cache.CompanyKey, id)
	return c.getOne(ctx, OpGetCompany, key, func(ctx context.Context) (*company.Company, error) {
		return c.base.GetCompany(ctx, id)
	})
}

// GetCompanyByEmployeeID returns the cached company employing employeeID.
func (c *CachedRepository) GetCompanyByEmployeeID(ctx context.Context, employeeID int) (*company.Company, error) {
	key := c.keySerializer.SerializeKey(cache.CompanyWithEmployeesByIDKey, employeeID)
	return c.getOne(ctx, OpGetCompanyByEmployeeID, key, func(ctx context.Context) (*company.Company, error) {
		return c.base.GetCompanyByEmployeeID(ctx, employeeID)
	})
}

// GetMultipleResults is not cached.
func (c *CachedRepository) GetMultipleResults(ctx context.Context, id int) (*company.Company, error) {
	return c.base.GetMultipleResults(ctx, id)
}

// MultipleMapping is not cached.
func (c *CachedRepository) MultipleMapping(ctx context.Context) ([]company.Company, error) {
	return c.base.MultipleMapping(ctx)
}

// CreateCompany passes through. Cached entries are left to expire.
func (c *CachedRepository) CreateCompany(ctx context.Context, dto company.CompanyDto) (company.Company, error) {
	return c.base.CreateCompany(ctx, dto)
}

func (c *CachedRepository) UpdateCompany(ctx context.Context, id int, dto company.CompanyDto) error {
	return c.base.UpdateCompany(ctx, id, dto)
}

func (c *CachedRepository) DeleteCompany(ctx context.Context, id int) error {
	return c.base.DeleteCompany(ctx, id)
}

func (c *CachedRepository) CreateMultipleCompanies(ctx context.Context, dtos []company.CompanyDto) error {
	return c.base.CreateMultipleCompanies(ctx, dtos)
}

func (c *CachedRepository) getOne(ctx context.Context, op, key string, load func(context.Context) (*company.Company, error)) (*company.Company, error) {
	v, found, err := getOrLoad(ctx, c, op, key, c.itemCodec,
		func(ctx context.Context) (company.Company, bool, error) {
			result, err := load(ctx)
			if err != nil || result == nil {
				return company.Company{}, false, err
			}
			return *result, true, nil
		})
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// getOrLoad implements the cache-aside read. A hit never calls load; a miss
// calls load once and stores the value only when load reports it present.
// Concurrent misses for one key each load and the last write wins.
func getOrLoad[V any](
	ctx context.Context,
	c *CachedRepository,
	op, key string,
	codec cache.Codec[V],
	load func(context.Context) (V, bool, error),
) (V, bool, error) {
	var zero V

	raw, ok, err := c.cache.GetString(ctx, key)
	if err != nil {
		return zero, false, company.StoreFailure(err, "failed to read cache")
	}
	if ok {
		v, err := codec.Decode(raw)
		if err != nil {
			return zero, false, company.SerializationFailure(err, "failed to decode cached value")
		}
		c.record(op, ResultHit)
		c.log.Info("got value from cache", "key", key)
		return v, true, nil
	}

	c.record(op, ResultMiss)
	v, found, err := load(ctx)
	if err != nil || !found {
		return v, found, err
	}

	encoded, err := codec.Encode(v)
	if err != nil {
		return zero, false, company.SerializationFailure(err, "failed to encode value for cache")
	}
	if err := c.cache.SetString(ctx, key, encoded, c.ttl); err != nil {
		return zero, false, company.StoreFailure(err, "failed to write cache")
	}

	c.record(op, ResultFill)
	c.log.Info("added value to cache", "key", key, "ttl", c.ttl)
	return v, true, nil
}

func (c *CachedRepository) record(op, result string) {
	switch result {
	case ResultHit:
		c.hits.Inc()
	case ResultMiss:
		c.misses.Inc()
	case ResultFill:
		c.fills.Inc()
	}
	if c.observer != nil {
		c.observer.ObserveCacheLookup(op, result)
	}
}
