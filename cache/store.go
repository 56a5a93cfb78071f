package cache

import "context"

// Store is the contract the cache-aside layer expects from an external
// key-value store. Values are opaque strings; the repository layer owns the
// encoding. Absence of a key is a normal return value, never an error, so
// every error coming out of a Store is a transport failure that callers must
// see unchanged.
//
// The store has no TTL and no compare-and-swap; entries live until they are
// explicitly deleted.
type Store interface {
	// Get returns the value stored under key. ok reports whether the key
	// exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Deleting a key that does not exist is
	// not an error, and calling Delete with no keys is a no-op.
	Delete(ctx context.Context, keys ...string) error

	// KeysMatching returns every key matching the glob pattern.
	KeysMatching(ctx context.Context, pattern string) ([]string, error)

	// Ping verifies the store is reachable. The composition root calls it
	// once on startup.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
