package cache

import (
	"context"
	"time"
)

// DefaultTTL is the absolute expiration, relative to the write time, applied to
// every cached read result.
const DefaultTTL = 5 * time.Minute

// Cache key namespaces for the cached read operations.
const (
	AllCompaniesKey             = "all_companies_cache"
	CompanyKey                  = "company_cache"
	CompanyWithEmployeesByIDKey = "company_with_employees_cache"
)

// KeyValueCache is the external string cache the repository reads through.
// GetString reports a miss with ok=false and a nil error.
type KeyValueCache interface {
	GetString(ctx context.Context, key string) (value string, ok bool, err error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
}

// KeySerializer builds a cache key from an operation name and its arguments.
// Keys must be stable across calls and processes.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}
