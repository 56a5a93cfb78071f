package cacheinfra

import (
	"context"
	"path"
	"time"

	"github.com/viccon/sturdyc"
)

// memoryTTL approximates "no expiry". The underlying client requires a
// positive TTL; a decade outlives any test or development process.
const memoryTTL = 10 * 365 * 24 * time.Hour

// memoryStore implements Store in-process on top of a sturdyc client. It
// exists so tests and local development do not need a running Redis, while
// observing the exact same contract: string values, explicit invalidation,
// glob key matching.
type memoryStore struct {
	client *sturdyc.Client[string]
}

// NewMemoryStore creates an in-process Store.
//
// Version compatibility note: this adapter assumes sturdyc v1.x API.
func NewMemoryStore(cfg MemoryConfig) (*memoryStore, error) {
	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[string](
		cfg.Capacity,
		cfg.NumShards,
		memoryTTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &memoryStore{client: client}, nil
}

// Get returns the value stored under key.
func (s *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok := s.client.Get(key)
	return val, ok, nil
}

// Set stores value under key.
func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.client.Set(key, value)
	return nil
}

// Delete removes the given keys, ignoring ones that do not exist.
func (s *memoryStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.client.Delete(key)
	}
	return nil
}

// KeysMatching scans every key and returns those matching the glob pattern.
func (s *memoryStore) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	var matched []string
	for _, key := range s.client.ScanKeys() {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

// Ping always succeeds; there is no connection to verify.
func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *memoryStore) Close() error {
	return nil
}
