package cacheinfra

import (
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"redis backend", func(c *Config) { c.Backend = BackendRedis }, false},
		{"missing backend", func(c *Config) { c.Backend = "" }, true},
		{"unknown backend", func(c *Config) { c.Backend = "sideways" }, true},
		{"redis without addr", func(c *Config) {
			c.Backend = BackendRedis
			c.Redis.Addr = ""
		}, true},
		{"zero capacity", func(c *Config) { c.Memory.Capacity = 0 }, true},
		{"negative capacity", func(c *Config) { c.Memory.Capacity = -1 }, true},
		{"zero shards", func(c *Config) { c.Memory.NumShards = 0 }, true},
		{"eviction percentage over 100", func(c *Config) { c.Memory.EvictionPercentage = 101 }, true},
		{"eviction percentage zero", func(c *Config) { c.Memory.EvictionPercentage = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStoreRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Memory.Capacity = 0

	if _, err := NewStore(cfg, nil); err == nil {
		t.Error("NewStore accepted an invalid config")
	}
}

func TestNewStoreBuildsMemoryBackend(t *testing.T) {
	store, err := NewStore(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store == nil {
		t.Fatal("NewStore returned nil store")
	}
}
