package repositorycache

import (
	"context"
	"strconv"

	"github.com/devforum/go-forum-cache/pagination"
)

// ListParams selects a filtered page of records. Filter entries match
// records whose named field equals the given value; field names use the
// record's JSON names (e.g. "questionId").
type ListParams struct {
	pagination.Params
	Filter map[string]string
}

// NewListParams returns ListParams with the default page selection and the
// given filter.
func NewListParams(filter map[string]string) ListParams {
	return ListParams{Params: pagination.DefaultParams(), Filter: filter}
}

// keyParams flattens the full parameter set into the name/value pairs the
// list cache key is built from. Filter names live under their own "filter."
// prefix so a filter that happens to be called "page" or "order" cannot
// collide with the pagination values and alias two different queries to one
// cache entry.
func (p ListParams) keyParams() map[string]string {
	params := map[string]string{
		"page":     strconv.Itoa(p.Page),
		"pageSize": strconv.Itoa(p.PageSize),
		"order":    string(p.Order),
	}
	for name, value := range p.Filter {
		params["filter."+name] = value
	}
	return params
}

// Repository is the persistence contract the cached decorator wraps and
// satisfies. Absence is reported through a found bool, never an error;
// translating absence into a domain error is the calling use-case's job.
type Repository[T Record] interface {
	// Create persists a new record, assigning its id and timestamps.
	Create(ctx context.Context, record T) (T, error)

	// FindByID returns the record with the given id.
	FindByID(ctx context.Context, id string) (T, bool, error)

	// FindBy returns the record whose unique field holds value. Field
	// names use the record's JSON names.
	FindBy(ctx context.Context, field, value string) (T, bool, error)

	// Update persists the record's current state and advances its
	// mutation timestamp.
	Update(ctx context.Context, record T) (T, error)

	// Delete removes the record with the given id. Deleting a missing
	// record is not an error.
	Delete(ctx context.Context, id string) error

	// FindMany returns the page of records selected by params, ordered by
	// creation time.
	FindMany(ctx context.Context, params ListParams) (pagination.Envelope[T], error)
}

// Index declares a secondary cache index for an entity type: a unique field
// callers look the entity up by, such as a user's email. Value extracts the
// indexed field from a record; an empty value means the record has no entry
// under this index.
type Index[T Record] struct {
	Field string
	Value func(T) string
}
