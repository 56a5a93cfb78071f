package cache

import (
	"log"
	"time"

	"github.com/devforum/go-forum-cache/internal/cacheinfra"
)

// Backend selects which Store implementation the composition root builds.
type Backend string

const (
	// BackendRedis connects to an external Redis server. This is the
	// production backend: every process shares one logical cache.
	BackendRedis Backend = "redis"
	// BackendMemory keeps the cache in-process. Intended for development
	// and tests.
	BackendMemory Backend = "memory"
)

// Config exposes cache store configuration for consumers of the cache package.
type Config struct {
	Backend Backend
	Redis   RedisConfig
	Memory  MemoryConfig
}

// RedisConfig holds the connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// MemoryConfig mirrors the in-process store options.
type MemoryConfig struct {
	Capacity           int
	NumShards          int
	EvictionPercentage int
	EvictionInterval   time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults for the
// memory backend.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewStore constructs the Store implementation selected by the configuration.
// The logger may be nil; only the Redis backend logs its operations.
func NewStore(cfg Config, logger *log.Logger) (Store, error) {
	return cacheinfra.NewStore(cfg.toInternal(), logger)
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Backend: cacheinfra.Backend(c.Backend),
		Redis: cacheinfra.RedisConfig{
			Addr:     c.Redis.Addr,
			DB:       c.Redis.DB,
			Password: c.Redis.Password,
		},
		Memory: cacheinfra.MemoryConfig{
			Capacity:           c.Memory.Capacity,
			NumShards:          c.Memory.NumShards,
			EvictionPercentage: c.Memory.EvictionPercentage,
			EvictionInterval:   c.Memory.EvictionInterval,
		},
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Backend: Backend(cfg.Backend),
		Redis: RedisConfig{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		},
		Memory: MemoryConfig{
			Capacity:           cfg.Memory.Capacity,
			NumShards:          cfg.Memory.NumShards,
			EvictionPercentage: cfg.Memory.EvictionPercentage,
			EvictionInterval:   cfg.Memory.EvictionInterval,
		},
	}
}
