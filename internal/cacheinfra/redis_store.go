package cacheinfra

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/redis/go-redis/v9"
)

// redisStore implements Store over an external Redis server. All backend
// instances share the same logical cache through it.
type redisStore struct {
	rdb    *redis.Client
	logger *log.Logger
}

// NewRedisStore creates a Store backed by Redis. The connection is lazy; call
// Ping to verify reachability on startup. The logger may be nil.
func NewRedisStore(cfg RedisConfig, logger *log.Logger) *redisStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	return &redisStore{rdb: rdb, logger: logger}
}

// Get returns the value stored under key. A missing key is reported through
// the bool, never as an error; anything else is a transport failure.
func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Printf("GET %q: %v", key, err)
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key with no expiration.
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Printf("SET %q: %v", key, err)
		return err
	}
	return nil
}

// Delete removes the given keys. Redis DEL already ignores missing keys; an
// empty key list is a no-op because DEL with no arguments is a protocol error.
func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	n, err := s.rdb.Del(ctx, keys...).Result()
	if err != nil {
		s.logger.Printf("DEL %v: %v", keys, err)
		return err
	}
	s.logger.Printf("DEL %v: deleted=%d", keys, n)
	return nil
}

// KeysMatching returns every key matching the glob pattern.
func (s *redisStore) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		s.logger.Printf("KEYS %q: %v", pattern, err)
		return nil, err
	}
	return keys, nil
}

// Ping verifies the server is reachable.
func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		s.logger.Printf("PING failed: %v", err)
		return err
	}
	return nil
}

// Close releases the client connection pool.
func (s *redisStore) Close() error {
	return s.rdb.Close()
}
