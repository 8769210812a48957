package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record holds the key and audit columns of every UUID-keyed table.
type Record struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewRecord assigns a fresh id stamped at now.
func NewRecord(now time.Time) Record {
	return Record{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}
