package di_test

import (
	"context"
	"testing"

	"github.com/devforum/go-forum-cache/cache"
	"github.com/devforum/go-forum-cache/pkg/di"
)

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := di.NewContainerWithDefaults(context.Background())
	if err != nil {
		t.Fatalf("NewContainerWithDefaults failed: %v", err)
	}
	defer container.Close()

	if container.Store() == nil {
		t.Fatal("container has no store")
	}
	if got := container.Config().Backend; got != cache.BackendMemory {
		t.Errorf("Backend = %q, want %q", got, cache.BackendMemory)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	config := cache.DefaultConfig()
	config.Backend = "memcached"

	if _, err := di.NewContainer(context.Background(), config, nil); err == nil {
		t.Error("container accepted an unknown backend")
	}
}

func TestContainerStoreIsShared(t *testing.T) {
	container, err := di.NewContainerWithDefaults(context.Background())
	if err != nil {
		t.Fatalf("NewContainerWithDefaults failed: %v", err)
	}
	defer container.Close()

	if container.Store() != container.Store() {
		t.Error("Store returned different instances")
	}
}

func TestContainerClose(t *testing.T) {
	container, err := di.NewContainerWithDefaults(context.Background())
	if err != nil {
		t.Fatalf("NewContainerWithDefaults failed: %v", err)
	}
	if err := container.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
