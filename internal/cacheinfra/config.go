package cacheinfra

import (
	"context"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Backend identifies a Store implementation.
type Backend string

const (
	// BackendRedis is the external shared cache.
	BackendRedis Backend = "redis"
	// BackendMemory is the in-process cache used by tests and local
	// development.
	BackendMemory Backend = "memory"
)

// Store mirrors the cache.Store contract. It is declared here as well so the
// adapters can be constructed without importing the public package.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	KeysMatching(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config holds the configuration for the cache store adapters.
type Config struct {
	// Backend selects the adapter to build.
	Backend Backend

	// Redis configures the external backend. Only consulted when Backend
	// is "redis".
	Redis RedisConfig

	// Memory configures the in-process backend. Only consulted when
	// Backend is "memory".
	Memory MemoryConfig
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// DB selects the logical Redis database.
	DB int

	// Password authenticates the connection. Empty means no auth.
	Password string
}

// MemoryConfig holds the in-process store settings. Entries never expire on
// their own; the TTL handed to the underlying client is effectively infinite
// and eviction only happens under capacity pressure.
type MemoryConfig struct {
	// Capacity defines the maximum number of entries the store holds.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards for concurrent access.
	// Must be greater than 0.
	NumShards int

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the store checks for evictable
	// entries. Zero value uses the client default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for the memory
// backend.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Memory: MemoryConfig{
			Capacity:           10000,
			NumShards:          256,
			EvictionPercentage: 10,
		},
	}
}

// Validate checks if the configuration values are valid for the selected
// backend.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendRedis, BackendMemory)),
	); err != nil {
		return err
	}

	switch c.Backend {
	case BackendRedis:
		return validation.ValidateStruct(&c.Redis,
			validation.Field(&c.Redis.Addr, validation.Required),
			validation.Field(&c.Redis.DB, validation.Min(0)),
		)
	case BackendMemory:
		return validation.ValidateStruct(&c.Memory,
			validation.Field(&c.Memory.Capacity, validation.Required, validation.Min(1)),
			validation.Field(&c.Memory.NumShards, validation.Required, validation.Min(1)),
			validation.Field(&c.Memory.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		)
	}
	return nil
}

// NewStore builds the adapter selected by cfg.Backend. The logger may be
// nil; only the Redis adapter logs.
func NewStore(cfg Config, logger *log.Logger) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendRedis:
		return NewRedisStore(cfg.Redis, logger), nil
	default:
		return NewMemoryStore(cfg.Memory)
	}
}
