// Package bunrepo implements the durable persistence repository contract on
// top of uptrace/bun. One generic repository serves every entity embedding
// repositorycache.Model; table mapping comes from the entity's bun tags.
//
// Open a database with the dialect matching your driver:
//
//	sqldb, _ := sql.Open("postgres", dsn)          // lib/pq
//	db := bun.NewDB(sqldb, pgdialect.New())
//
//	sqldb, _ := sql.Open("sqlite3", ":memory:")    // mattn/go-sqlite3
//	db := bun.NewDB(sqldb, sqlitedialect.New())
package bunrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/devforum/go-forum-cache/pagination"
	"github.com/devforum/go-forum-cache/repositorycache"
)

// Clock returns the current time. Injectable for deterministic tests.
type Clock func() time.Time

// Repository is a bun-backed persistence repository for one entity type.
type Repository[T repositorycache.Record] struct {
	db    *bun.DB
	clock Clock
}

// Interface assertion against the contract the cached decorator wraps.
var _ repositorycache.Repository[*repositorycache.Model] = (*Repository[*repositorycache.Model])(nil)

// New creates a repository for T using the wall clock.
func New[T repositorycache.Record](db *bun.DB) *Repository[T] {
	return NewWithClock[T](db, time.Now)
}

// NewWithClock creates a repository for T with an injected clock.
func NewWithClock[T repositorycache.Record](db *bun.DB, clock Clock) *Repository[T] {
	return &Repository[T]{db: db, clock: clock}
}

// Create stamps the record with a fresh uuid and timestamps, then inserts it.
func (r *Repository[T]) Create(ctx context.Context, record T) (T, error) {
	record.StampNew(uuid.NewString(), r.clock().UTC())
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// FindByID returns the record with the given id, or found=false.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	return r.findWhere(ctx, "id", id)
}

// FindBy returns the record whose unique field holds value. The field name
// uses the record's JSON name and is mapped to its snake_case column.
func (r *Repository[T]) FindBy(ctx context.Context, field, value string) (T, bool, error) {
	return r.findWhere(ctx, toSnake(field), value)
}

// Update advances the record's mutation timestamp and writes every column.
// Updating a record that no longer exists is an error, not a silent no-op;
// otherwise the caching layer would happily cache a record persistence does
// not hold.
func (r *Repository[T]) Update(ctx context.Context, record T) (T, error) {
	record.StampUpdated(r.clock().UTC())
	res, err := r.db.NewUpdate().Model(record).WherePK().Exec(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		var zero T
		return zero, err
	}
	if affected == 0 {
		var zero T
		return zero, fmt.Errorf("update: record %q not found", record.RecordID())
	}
	return record, nil
}

// Delete removes the record with the given id. Deleting a missing record is
// not an error.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	record := r.newRecord()
	_, err := r.db.NewDelete().Model(record).Where("id = ?", id).Exec(ctx)
	return err
}

// FindMany returns the page selected by params, filtered by equality on the
// given fields and ordered by creation time with id as tiebreaker.
func (r *Repository[T]) FindMany(ctx context.Context, params repositorycache.ListParams) (pagination.Envelope[T], error) {
	if err := params.Validate(); err != nil {
		return pagination.EmptyEnvelope[T](), err
	}

	var records []T
	q := r.db.NewSelect().Model(&records)

	for field, value := range params.Filter {
		q = q.Where("? = ?", bun.Ident(toSnake(field)), value)
	}

	direction := "ASC"
	if params.Order == pagination.OrderDesc {
		direction = "DESC"
	}
	q = q.OrderExpr("created_at ?, id ?", bun.Safe(direction), bun.Safe(direction)).
		Limit(params.PageSize).
		Offset((params.Page - 1) * params.PageSize)

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return pagination.EmptyEnvelope[T](), err
	}

	return pagination.NewEnvelope(records, total, params.Params), nil
}

func (r *Repository[T]) findWhere(ctx context.Context, column, value string) (T, bool, error) {
	record := r.newRecord()
	err := r.db.NewSelect().Model(record).Where("? = ?", bun.Ident(column), value).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return record, true, nil
}

// newRecord allocates a fresh T for bun to scan into. T is a pointer type,
// so its zero value only carries the type.
func (r *Repository[T]) newRecord() T {
	var zero T
	return reflect.New(reflect.TypeOf(zero).Elem()).Interface().(T)
}
