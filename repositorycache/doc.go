// Package repositorycache provides the cache-aside decorator for the company
// repository.
//
// # Overview
//
// CachedRepository wraps any repository.CompanyRepository and implements the
// same interface. Three reads go through the cache; everything else is
// delegated to the base repository untouched.
//
// # Basic Usage
//
//	provider, _ := store.Open(ctx, store.DefaultConfig(), log)
//	kv, closer, _ := cacheinfra.New(ctx, cache.DefaultConfig())
//	defer closer.Close()
//
//	base := repository.New(provider, log)
//	cached := repositorycache.New(base, kv, repositorycache.WithLogger(log))
//
//	c, err := cached.GetCompany(ctx, 42)
//
// # Cached vs Pass-through Operations
//
// Cached, keyed by a fixed namespace plus the argument:
//   - GetCompanies (cache.AllCompaniesKey)
//   - GetCompany (cache.CompanyKey + id)
//   - GetCompanyByEmployeeID (cache.CompanyWithEmployeesByIDKey + employee id)
//
// Pass-through:
//   - GetMultipleResults, MultipleMapping
//   - CreateCompany, UpdateCompany, DeleteCompany, CreateMultipleCompanies
//
// # Caching Behavior
//
//  1. Serialize the key
//  2. On a hit, decode the stored snapshot and return it without touching the base
//  3. On a miss, call the base repository once
//  4. If the base reports the company absent (nil), return nil and store nothing
//  5. Otherwise encode the value and store it with the configured TTL
//
// Writes never invalidate cached entries. A cached read may return data up to
// one TTL (cache.DefaultTTL, five minutes) old.
//
// # Error Handling
//
// Base repository errors are returned unchanged. A failing cache backend is
// reported as a STORE_FAILURE and an undecodable payload as a
// SERIALIZATION_FAILURE; neither falls back to the database.
package repositorycache
