// Package pagination implements the pagination contract shared by every
// list-returning repository operation. The same algorithm backs in-memory
// repositories and the cached envelope layer so that a page looks identical
// no matter where it was materialized.
package pagination

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Order determines the sort direction applied to a collection before slicing.
type Order string

const (
	// OrderAsc sorts oldest first.
	OrderAsc Order = "asc"
	// OrderDesc sorts newest first.
	OrderDesc Order = "desc"
)

// Dated is the minimal capability the engine needs from a record: a creation
// timestamp to sort by and an id used as a deterministic tiebreaker.
type Dated interface {
	RecordID() string
	RecordCreatedAt() time.Time
}

// Params carries the page selection for a list operation.
type Params struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Order    Order `json:"order"`
}

// DefaultParams returns the page selection used when callers do not specify one.
func DefaultParams() Params {
	return Params{Page: 1, PageSize: 20, Order: OrderDesc}
}

// Validate checks that the params describe a well-formed page selection.
func (p Params) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Required, validation.Min(1)),
		validation.Field(&p.PageSize, validation.Required, validation.Min(1)),
		validation.Field(&p.Order, validation.Required, validation.In(OrderAsc, OrderDesc)),
	)
}

// Envelope is the paginated result returned by every list operation.
// TotalItems counts every record matching the filter, ignoring pagination.
type Envelope[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	Order      Order `json:"order"`
}

// Validate checks the envelope metadata for structural sanity. It is used by
// the cache codec to reject decoded envelopes that no longer hold the shape
// this package produces.
func (e Envelope[T]) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Page, validation.Min(1)),
		validation.Field(&e.PageSize, validation.Min(0)),
		validation.Field(&e.TotalItems, validation.Min(0)),
		validation.Field(&e.TotalPages, validation.Min(0)),
		validation.Field(&e.Order, validation.Required, validation.In(OrderAsc, OrderDesc)),
	)
}

// NewEnvelope assembles the metadata for a page whose items were already
// selected, e.g. by a SQL LIMIT/OFFSET query. TotalPages is always
// ceil(totalItems/pageSize); an empty collection therefore has zero pages.
// The envelope echoes the requested page size, it is never clamped to the
// item count.
func NewEnvelope[T any](items []T, totalItems int, params Params) Envelope[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (totalItems + params.PageSize - 1) / params.PageSize
	}

	return Envelope[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Order:      params.Order,
	}
}

// EmptyEnvelope is the canonical zero-value envelope. The cache codec hands
// it back when a cached envelope fails to decode; callers refetch from the
// source of truth before it ever becomes visible.
func EmptyEnvelope[T any]() Envelope[T] {
	return Envelope[T]{
		Items:      []T{},
		Page:       1,
		PageSize:   0,
		TotalItems: 0,
		TotalPages: 0,
		Order:      OrderDesc,
	}
}

// Paginate sorts the collection by creation time per params.Order and returns
// the requested slice. Out-of-range pages yield an empty Items slice, not an
// error. Records sharing a timestamp are ordered by id in the same direction
// so repeated calls return identical pages.
func Paginate[T Dated](collection []T, params Params) Envelope[T] {
	sorted := make([]T, len(collection))
	copy(sorted, collection)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.RecordCreatedAt().Equal(b.RecordCreatedAt()) {
			if params.Order == OrderAsc {
				return a.RecordCreatedAt().Before(b.RecordCreatedAt())
			}
			return a.RecordCreatedAt().After(b.RecordCreatedAt())
		}
		if params.Order == OrderAsc {
			return a.RecordID() < b.RecordID()
		}
		return a.RecordID() > b.RecordID()
	})

	start := (params.Page - 1) * params.PageSize
	end := start + params.PageSize

	var items []T
	switch {
	case params.PageSize <= 0 || start < 0 || start >= len(sorted):
		items = []T{}
	case end > len(sorted):
		items = sorted[start:]
	default:
		items = sorted[start:end]
	}

	return NewEnvelope(items, len(collection), params)
}
