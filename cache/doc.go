// Package cache defines the key-value store contract and key-naming scheme
// used by the cached repository layer.
//
// # Overview
//
// This package exports two building blocks:
//
//   - Store: the contract an external key-value store must satisfy
//     (get/set/delete/keys-matching over opaque string values)
//   - KeyBuilder: deterministic cache key generation for one entity namespace
//
// Store implementations live in internal/cacheinfra and are constructed via
// NewStore from a Config. The production backend is Redis; an in-process
// backend exists for development and tests.
//
// # Key naming
//
// Every entity type owns a string prefix. A KeyBuilder derives three kinds of
// keys from it:
//
//	users:42e0...                    primary entity encoding
//	users:email:jane@example.com     secondary index, same value as primary
//	users:find-many:order:desc:...   paginated query result
//
// List keys concatenate their query parameters sorted alphabetically, so
// semantically identical queries always map to the same key regardless of
// call-site ordering. The find-many segment isolates list keys in their own
// sub-namespace: mutations invalidate cached pages by deleting everything
// matching ListPattern without touching entity encodings.
//
// # Error handling
//
// Absence of a key is never an error; Store methods return ok=false instead.
// Any error returned by a Store is a transport failure and is surfaced to
// callers unchanged by the layers above.
//
// # See Also
//
// For the cache-aside repository decorators built on this package, see the
// repositorycache package.
package cache
