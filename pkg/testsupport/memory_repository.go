// Package testsupport provides test doubles and fixture helpers for the
// cached repository layer: an in-memory persistence repository driven by the
// same pagination engine as the real one, and a deterministic clock.
package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/devforum/go-forum-cache/pagination"
	"github.com/devforum/go-forum-cache/repositorycache"
)

// MemoryRepository is an in-memory implementation of the persistence
// repository contract. It behaves like a real store: records are cloned on
// the way in and out so callers never share memory with it, filters match on
// JSON field names, and list results follow the canonical pagination rules.
// Every call is recorded so tests can assert how often persistence was hit.
type MemoryRepository[T repositorycache.Record] struct {
	records *xsync.MapOf[string, T]
	clock   func() time.Time

	mu    sync.Mutex
	calls []string
}

// Interface assertion against the persistence contract.
var _ repositorycache.Repository[*repositorycache.Model] = (*MemoryRepository[*repositorycache.Model])(nil)

// NewMemoryRepository creates an empty repository using the wall clock.
func NewMemoryRepository[T repositorycache.Record]() *MemoryRepository[T] {
	return NewMemoryRepositoryWithClock[T](time.Now)
}

// NewMemoryRepositoryWithClock creates an empty repository with an injected
// clock, letting tests control record timestamps.
func NewMemoryRepositoryWithClock[T repositorycache.Record](clock func() time.Time) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		records: xsync.NewMapOf[string, T](),
		clock:   clock,
	}
}

// Calls returns the method names recorded so far, in call order.
func (r *MemoryRepository[T]) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallCount returns how many times the named method was called.
func (r *MemoryRepository[T]) CallCount(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, call := range r.calls {
		if call == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the recorded calls.
func (r *MemoryRepository[T]) ResetCalls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *MemoryRepository[T]) recordCall(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, method)
}

// Create implements repositorycache.Repository.
func (r *MemoryRepository[T]) Create(ctx context.Context, record T) (T, error) {
	r.recordCall("Create")
	record.StampNew(uuid.NewString(), r.clock().UTC())
	stored := clone(record)
	r.records.Store(record.RecordID(), stored)
	return clone(stored), nil
}

// FindByID implements repositorycache.Repository.
func (r *MemoryRepository[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	r.recordCall("FindByID")
	stored, ok := r.records.Load(id)
	if !ok {
		var zero T
		return zero, false, nil
	}
	return clone(stored), true, nil
}

// FindBy implements repositorycache.Repository.
func (r *MemoryRepository[T]) FindBy(ctx context.Context, field, value string) (T, bool, error) {
	r.recordCall("FindBy")
	var match T
	found := false
	r.records.Range(func(_ string, stored T) bool {
		if fieldValue(stored, field) == value {
			match = clone(stored)
			found = true
			return false
		}
		return true
	})
	if !found {
		var zero T
		return zero, false, nil
	}
	return match, true, nil
}

// Update implements repositorycache.Repository.
func (r *MemoryRepository[T]) Update(ctx context.Context, record T) (T, error) {
	r.recordCall("Update")
	if _, ok := r.records.Load(record.RecordID()); !ok {
		var zero T
		return zero, fmt.Errorf("update: record %q not found", record.RecordID())
	}
	record.StampUpdated(r.clock().UTC())
	stored := clone(record)
	r.records.Store(record.RecordID(), stored)
	return clone(stored), nil
}

// Delete implements repositorycache.Repository. Deleting a missing record is
// a no-op.
func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	r.recordCall("Delete")
	r.records.Delete(id)
	return nil
}

// FindMany implements repositorycache.Repository using the shared pagination
// engine over the filtered collection.
func (r *MemoryRepository[T]) FindMany(ctx context.Context, params repositorycache.ListParams) (pagination.Envelope[T], error) {
	r.recordCall("FindMany")

	if err := params.Validate(); err != nil {
		return pagination.EmptyEnvelope[T](), err
	}

	var matching []T
	r.records.Range(func(_ string, stored T) bool {
		for field, want := range params.Filter {
			if fieldValue(stored, field) != want {
				return true
			}
		}
		matching = append(matching, clone(stored))
		return true
	})

	return pagination.Paginate(matching, params.Params), nil
}

// Len returns the number of stored records.
func (r *MemoryRepository[T]) Len() int {
	return r.records.Size()
}

// clone deep-copies a record through its JSON encoding so the repository
// never shares memory with its callers.
func clone[T repositorycache.Record](record T) T {
	data, err := json.Marshal(record)
	if err != nil {
		panic(fmt.Sprintf("testsupport: clone marshal: %v", err))
	}
	fresh := reflect.New(reflect.TypeOf(record).Elem()).Interface().(T)
	if err := json.Unmarshal(data, fresh); err != nil {
		panic(fmt.Sprintf("testsupport: clone unmarshal: %v", err))
	}
	return fresh
}

// fieldValue reads a record field by its JSON name, formatted as a string.
func fieldValue[T repositorycache.Record](record T, field string) string {
	data, err := json.Marshal(record)
	if err != nil {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}
	value, ok := fields[field]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}
