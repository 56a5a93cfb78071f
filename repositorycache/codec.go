package repositorycache

import (
	"encoding/json"
	"reflect"

	"github.com/devforum/go-forum-cache/pagination"
)

// The codec turns records and paginated envelopes into the opaque strings
// the cache store holds. Encoding is plain JSON with time.Time fields as
// RFC 3339 strings. Decoding is defensive: a cache entry may have been
// written by an older build or corrupted in flight, so every decode
// validates the shape before the value is trusted. Corruption is reported
// through an ok bool and never escapes as an error; the caller discards the
// entry and refetches from persistence.

// validatable lets records carry their own field rules; domain entities
// implement it with ozzo-validation.
type validatable interface {
	Validate() error
}

// EncodeRecord serializes a record for cache storage.
func EncodeRecord[T Record](record T) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeRecord parses a cached record encoding. ok is false when the raw
// value is malformed JSON, is missing its identity or timestamps, or fails
// the record's own validation rules.
func DecodeRecord[T Record](raw string) (T, bool) {
	record := newRecord[T]()

	if err := json.Unmarshal([]byte(raw), record); err != nil {
		return record, false
	}

	if record.RecordID() == "" {
		return record, false
	}
	if record.RecordCreatedAt().IsZero() || record.RecordUpdatedAt().IsZero() {
		return record, false
	}

	if v, hasRules := any(record).(validatable); hasRules {
		if err := v.Validate(); err != nil {
			return record, false
		}
	}

	return record, true
}

// EncodeEnvelope serializes a paginated result for cache storage.
func EncodeEnvelope[T Record](env pagination.Envelope[T]) (string, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeEnvelope parses a cached paginated result. On any corruption it
// returns the canonical empty envelope with ok=false; callers treat that as
// a miss and refetch, so the sentinel is never visible to use-cases unless
// persistence itself is empty.
func DecodeEnvelope[T Record](raw string) (pagination.Envelope[T], bool) {
	var wire struct {
		Items      []json.RawMessage `json:"items"`
		Page       int               `json:"page"`
		PageSize   int               `json:"pageSize"`
		TotalItems int               `json:"totalItems"`
		TotalPages int               `json:"totalPages"`
		Order      pagination.Order  `json:"order"`
	}

	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return pagination.EmptyEnvelope[T](), false
	}

	env := pagination.Envelope[T]{
		Items:      make([]T, 0, len(wire.Items)),
		Page:       wire.Page,
		PageSize:   wire.PageSize,
		TotalItems: wire.TotalItems,
		TotalPages: wire.TotalPages,
		Order:      wire.Order,
	}
	if err := env.Validate(); err != nil {
		return pagination.EmptyEnvelope[T](), false
	}

	for _, item := range wire.Items {
		record, ok := DecodeRecord[T](string(item))
		if !ok {
			return pagination.EmptyEnvelope[T](), false
		}
		env.Items = append(env.Items, record)
	}

	return env, true
}

// newRecord allocates a fresh T. Records are pointer types (entities embed
// Model and satisfy Record through pointer receivers), so the zero value of
// T is a nil pointer we can only take the type from.
func newRecord[T Record]() T {
	var zero T
	return reflect.New(reflect.TypeOf(zero).Elem()).Interface().(T)
}
