// Package cache defines the key/value cache contract used by the cached
// company repository, together with the key and TTL policy.
//
// # Contract
//
// KeyValueCache is a string cache with absolute expiration:
//
//	value, ok, err := kv.GetString(ctx, key) // ok=false on a miss
//	err = kv.SetString(ctx, key, value, cache.DefaultTTL)
//
// Values are encoded snapshots of domain entities. JSONCodec is the default;
// MsgpackCodec can be selected through Config.Codec.
//
// # Keys
//
// Keys are produced by a KeySerializer from the operation namespace and its
// arguments:
//
//	all_companies_cache                 GetCompanies
//	company_cache::<id>                 GetCompany
//	company_with_employees_cache::<id>  GetCompanyByEmployeeID
//
// A prefixed serializer (NewPrefixedKeySerializer) prepends a namespace segment.
//
// # Expiration
//
// Entries expire DefaultTTL (5 minutes) after they were written. Nothing in
// this module evicts or rewrites an entry when the underlying row changes, so
// readers may observe data up to one TTL old after a write.
//
// Backends live in internal/cacheinfra.
package cache
