package cacheinfra

import (
	"context"
	"sort"
	"testing"
)

func newTestStore(t *testing.T) *memoryStore {
	t.Helper()
	store, err := NewMemoryStore(DefaultConfig().Memory)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	return store
}

func TestMemoryStoreSetGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "users:1", "payload"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok, err := store.Get(ctx, "users:1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || val != "payload" {
		t.Errorf("Get = (%q, %v), want (payload, true)", val, ok)
	}
}

func TestMemoryStoreAbsenceIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	val, ok, err := store.Get(context.Background(), "users:missing")
	if err != nil {
		t.Fatalf("Get of missing key errored: %v", err)
	}
	if ok || val != "" {
		t.Errorf("Get = (%q, %v), want absent", val, ok)
	}
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "users:1", "old")
	_ = store.Set(ctx, "users:1", "new")

	val, _, _ := store.Get(ctx, "users:1")
	if val != "new" {
		t.Errorf("Get = %q after overwrite", val)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "users:1", "payload")
	_ = store.Set(ctx, "users:2", "payload")

	if err := store.Delete(ctx, "users:1", "users:2", "users:never-existed"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "users:1"); ok {
		t.Error("users:1 still present after delete")
	}

	// Empty input is a no-op.
	if err := store.Delete(ctx); err != nil {
		t.Errorf("Delete with no keys errored: %v", err)
	}
}

func TestMemoryStoreKeysMatching(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "users:1", "a")
	_ = store.Set(ctx, "users:email:a@b.com", "a")
	_ = store.Set(ctx, "users:find-many:order:desc:page:1:pageSize:20", "a")
	_ = store.Set(ctx, "users:find-many:order:asc:page:2:pageSize:10", "a")
	_ = store.Set(ctx, "answers:find-many:order:desc:page:1:pageSize:20", "a")

	keys, err := store.KeysMatching(ctx, "users:find-many:*")
	if err != nil {
		t.Fatalf("KeysMatching failed: %v", err)
	}
	sort.Strings(keys)

	want := []string{
		"users:find-many:order:asc:page:2:pageSize:10",
		"users:find-many:order:desc:page:1:pageSize:20",
	}
	if len(keys) != len(want) {
		t.Fatalf("KeysMatching = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("KeysMatching[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := newTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping errored: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close errored: %v", err)
	}
}
