package repositorycache

import (
	"time"
)

// Record is the capability every cached entity must provide: an opaque
// unique id and creation/mutation timestamps. Persistence implementations
// use the stamping methods to assign identity on create and advance the
// mutation timestamp on update.
type Record interface {
	RecordID() string
	RecordCreatedAt() time.Time
	RecordUpdatedAt() time.Time

	// StampNew assigns the id and both timestamps. Called exactly once,
	// by the persistence repository, when the record is first created.
	StampNew(id string, now time.Time)

	// StampUpdated advances the mutation timestamp.
	StampUpdated(now time.Time)
}

// Model is the embeddable base shared by all domain records. It carries the
// id and timestamps and satisfies Record through pointer receivers, so
// entities are always handled as pointers.
type Model struct {
	ID        string    `bun:"id,pk" json:"id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// RecordID implements Record.
func (m *Model) RecordID() string { return m.ID }

// RecordCreatedAt implements Record.
func (m *Model) RecordCreatedAt() time.Time { return m.CreatedAt }

// RecordUpdatedAt implements Record.
func (m *Model) RecordUpdatedAt() time.Time { return m.UpdatedAt }

// StampNew implements Record.
func (m *Model) StampNew(id string, now time.Time) {
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
}

// StampUpdated implements Record.
func (m *Model) StampUpdated(now time.Time) {
	m.UpdatedAt = now
}
