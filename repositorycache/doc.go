// Package repositorycache provides cache-aside repository decorators for
// forum domain entities.
//
// # Overview
//
// This package implements the repository decorator pattern over an external
// key-value store. A CachedRepository wraps a base Repository and satisfies
// the same contract, so use-cases cannot tell whether a result came from the
// cache or from durable persistence.
//
// # Key Features
//
//   - Type-safe caching: Go generics over the Record capability, no deep
//     inheritance chains
//   - Cache-aside reads: hit, miss and corrupt entries all converge on the
//     same answer
//   - Write-through mutations: the durable write is confirmed before the
//     cache is touched
//   - Self-healing: a corrupted entry is deleted and refetched exactly once,
//     transparently
//   - Secondary indexes: entities are also cached under unique lookup fields
//     (email, slug, ...) holding the identical encoding as the primary key
//
// # Basic Usage
//
//	store, _ := cache.NewStore(cache.DefaultConfig(), nil)
//	base := bunrepo.New[*forum.User](db)
//
//	users := repositorycache.New(base, store, "users", repositorycache.Index[*forum.User]{
//		Field: "email",
//		Value: func(u *forum.User) string { return u.Email },
//	})
//
//	user, found, err := users.FindByID(ctx, id)
//	page, err := users.FindMany(ctx, repositorycache.NewListParams(nil))
//
// # Caching Behavior
//
// Reads follow the cache-aside pattern:
//
//  1. Get the key; a transport error is returned unchanged
//  2. On a valid hit, return the decoded record
//  3. On a corrupt hit, delete the key and continue as a miss
//  4. On a miss, read persistence; absence is returned without caching a
//     negative entry
//  5. Write a found record through to the primary and every index key
//
// Mutations write persistence first and only touch the cache after the
// durable write is confirmed. Every mutation ends by pattern-deleting the
// entity's list namespace, because a cached page may contain a stale copy of
// the record and pages are never patched in place. All invalidation calls
// complete before the mutating method returns.
//
// # What Is Not Done
//
// Entries have no TTL and absent records are never cached as confirmed
// missing. This trades memory bounding for correctness: the cache can only
// serve a record that persistence produced, and repeated misses always
// re-query the source of truth. There is likewise no isolation beyond what
// the base repository offers; concurrent read-modify-write sequences can
// interleave.
package repositorycache
