// Package di provides dependency injection for the cache layer. The
// container owns the cache store singleton and its lifecycle; repositories
// receive it explicitly instead of reaching for a module-level client.
package di

import (
	"context"
	"log"

	"github.com/devforum/go-forum-cache/cache"
	"github.com/devforum/go-forum-cache/repositorycache"
)

// Container manages the process-wide cache store instance shared by every
// cached repository, and provides factory methods for creating them.
type Container struct {
	store  cache.Store
	config cache.Config
}

// NewContainer creates a DI container with the provided cache configuration.
// It builds the configured store and verifies it is reachable. The logger
// may be nil.
func NewContainer(ctx context.Context, config cache.Config, logger *log.Logger) (*Container, error) {
	store, err := cache.NewStore(config, logger)
	if err != nil {
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Container{
		store:  store,
		config: config,
	}, nil
}

// NewContainerWithDefaults creates a DI container using the default
// configuration (in-process store). This is a convenience constructor for
// tests and examples.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, cache.DefaultConfig(), nil)
}

// Store returns the singleton cache store instance.
func (c *Container) Store() cache.Store {
	return c.store
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// Close releases the cache store connection. Call it on shutdown.
func (c *Container) Close() error {
	return c.store.Close()
}

// NewCachedRepository creates a cached repository over the provided base
// repository, wired to the container's store.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function. Example:
//
//	users := di.NewCachedRepository(container, baseUsers, "users", emailIndex)
func NewCachedRepository[T repositorycache.Record](container *Container, base repositorycache.Repository[T], prefix string, indexes ...repositorycache.Index[T]) *repositorycache.CachedRepository[T] {
	return repositorycache.New(base, container.store, prefix, indexes...)
}
