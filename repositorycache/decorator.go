package repositorycache

import (
	"context"

	"github.com/devforum/go-forum-cache/cache"
	"github.com/devforum/go-forum-cache/pagination"
)

// Interface assertion to ensure CachedRepository satisfies the persistence
// contract it decorates.
var _ Repository[*Model] = (*CachedRepository[*Model])(nil)

// CachedRepository decorates a base repository with cache-aside reads and
// write-through mutations. Callers use it exactly like the base repository;
// caching is invisible except for the reduced persistence traffic.
//
// Consistency model: within one mutation the persistence write is confirmed
// before any cache write is issued, and every cache invalidation completes
// before the method returns. The two writes are not transactional, so a
// failure between them can leave a stale but well-formed entry until the
// next mutation; only corrupted entries self-heal on read.
type CachedRepository[T Record] struct {
	base    Repository[T]
	store   cache.Store
	keys    cache.KeyBuilder
	indexes []Index[T]
}

// New creates a CachedRepository over the base repository. prefix names the
// entity's cache namespace; indexes declare the unique fields the entity is
// looked up by besides its id.
func New[T Record](base Repository[T], store cache.Store, prefix string, indexes ...Index[T]) *CachedRepository[T] {
	return &CachedRepository[T]{
		base:    base,
		store:   store,
		keys:    cache.NewKeyBuilder(prefix),
		indexes: indexes,
	}
}

// Create persists the record, then populates the primary and every
// secondary-index cache entry and drops cached pages, which the new record
// invalidated.
func (c *CachedRepository[T]) Create(ctx context.Context, record T) (T, error) {
	created, err := c.base.Create(ctx, record)
	if err != nil {
		return created, err
	}
	if err := c.writeThrough(ctx, created); err != nil {
		return created, err
	}
	if err := c.invalidateLists(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update persists the record, overwrites its cache entries and drops cached
// pages. Index entries keyed by a field whose value changed are deleted
// first so a lookup by the old value cannot resurface the record.
func (c *CachedRepository[T]) Update(ctx context.Context, record T) (T, error) {
	previous, hadPrevious, err := c.cachedByID(ctx, record.RecordID())
	if err != nil {
		var zero T
		return zero, err
	}

	updated, err := c.base.Update(ctx, record)
	if err != nil {
		return updated, err
	}

	if hadPrevious {
		if err := c.dropChangedIndexes(ctx, previous, updated); err != nil {
			return updated, err
		}
	}
	if err := c.writeThrough(ctx, updated); err != nil {
		return updated, err
	}
	if err := c.invalidateLists(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes the record and all of its cache entries. The record is
// resolved through the normal read path first to learn its secondary-index
// values; if it cannot be found at all the call is an idempotent no-op.
func (c *CachedRepository[T]) Delete(ctx context.Context, id string) error {
	record, found, err := c.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if err := c.base.Delete(ctx, id); err != nil {
		return err
	}

	keys := []string{c.keys.Primary(id)}
	for _, idx := range c.indexes {
		if value := idx.Value(record); value != "" {
			keys = append(keys, c.keys.Index(idx.Field, value))
		}
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return err
	}
	return c.invalidateLists(ctx)
}

// FindByID reads the record cache-aside by primary key.
func (c *CachedRepository[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	return c.readThrough(ctx, c.keys.Primary(id), func(ctx context.Context) (T, bool, error) {
		return c.base.FindByID(ctx, id)
	})
}

// FindBy reads the record cache-aside by a secondary-index key.
func (c *CachedRepository[T]) FindBy(ctx context.Context, field, value string) (T, bool, error) {
	return c.readThrough(ctx, c.keys.Index(field, value), func(ctx context.Context) (T, bool, error) {
		return c.base.FindBy(ctx, field, value)
	})
}

// FindMany reads a page of records cache-aside at the list key derived from
// the full, alphabetically sorted parameter set.
func (c *CachedRepository[T]) FindMany(ctx context.Context, params ListParams) (pagination.Envelope[T], error) {
	key := c.keys.List(params.keyParams())

	if !bypassCacheFromContext(ctx) {
		raw, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return pagination.EmptyEnvelope[T](), err
		}
		if ok {
			if env, valid := DecodeEnvelope[T](raw); valid {
				return env, nil
			}
			// Corrupt page: drop it and fall through to persistence.
			if err := c.store.Delete(ctx, key); err != nil {
				return pagination.EmptyEnvelope[T](), err
			}
		}
	}

	env, err := c.base.FindMany(ctx, params)
	if err != nil {
		return env, err
	}

	encoded, err := EncodeEnvelope(env)
	if err != nil {
		return env, err
	}
	if err := c.store.Set(ctx, key, encoded); err != nil {
		return env, err
	}
	return env, nil
}

// readThrough is the shared cache-aside read path: serve a valid cached
// encoding, self-heal a corrupted one by deleting it (exactly one retry, no
// loop), and on miss fetch from persistence and write the result through.
// Absent records are returned as-is and never cached.
func (c *CachedRepository[T]) readThrough(ctx context.Context, key string, fetch func(ctx context.Context) (T, bool, error)) (T, bool, error) {
	var zero T

	if !bypassCacheFromContext(ctx) {
		raw, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return zero, false, err
		}
		if ok {
			if record, valid := DecodeRecord[T](raw); valid {
				return record, true, nil
			}
			if err := c.store.Delete(ctx, key); err != nil {
				return zero, false, err
			}
		}
	}

	record, found, err := fetch(ctx)
	if err != nil || !found {
		return zero, found, err
	}

	if err := c.writeThrough(ctx, record); err != nil {
		return zero, false, err
	}
	return record, true, nil
}

// writeThrough stores the record's encoding under its primary key and under
// every secondary-index key. All keys hold the identical encoding, never a
// partial copy.
func (c *CachedRepository[T]) writeThrough(ctx context.Context, record T) error {
	encoded, err := EncodeRecord(record)
	if err != nil {
		return err
	}

	if err := c.store.Set(ctx, c.keys.Primary(record.RecordID()), encoded); err != nil {
		return err
	}
	for _, idx := range c.indexes {
		value := idx.Value(record)
		if value == "" {
			continue
		}
		if err := c.store.Set(ctx, c.keys.Index(idx.Field, value), encoded); err != nil {
			return err
		}
	}
	return nil
}

// invalidateLists drops every cached page for this entity type. Pages are
// never patched in place; pattern deletion of the whole list namespace is
// the only invalidation that cannot miss a stale slice.
func (c *CachedRepository[T]) invalidateLists(ctx context.Context) error {
	keys, err := c.store.KeysMatching(ctx, c.keys.ListPattern())
	if err != nil {
		return err
	}
	return c.store.Delete(ctx, keys...)
}

// cachedByID returns the currently cached encoding of a record, if any.
// Used as the pre-image for index invalidation on update. A miss or corrupt
// entry just means there is no stale index to clean up; a transport failure
// is reported so the caller does not skip invalidation and leave a stale
// index behind.
func (c *CachedRepository[T]) cachedByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	raw, ok, err := c.store.Get(ctx, c.keys.Primary(id))
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	record, valid := DecodeRecord[T](raw)
	if !valid {
		return zero, false, nil
	}
	return record, true, nil
}

// dropChangedIndexes deletes index entries whose key was derived from a
// field value the update changed.
func (c *CachedRepository[T]) dropChangedIndexes(ctx context.Context, previous, updated T) error {
	var stale []string
	for _, idx := range c.indexes {
		oldValue := idx.Value(previous)
		if oldValue != "" && oldValue != idx.Value(updated) {
			stale = append(stale, c.keys.Index(idx.Field, oldValue))
		}
	}
	return c.store.Delete(ctx, stale...)
}
