package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is owned 1:1 by a User and keyed by the user's id.
type Profile struct {
	UserID     uuid.UUID `db:"user_id"`
	Avatar     *string   `db:"avatar"`
	Bio        *string   `db:"bio"`
	Address    *string   `db:"address"`
	City       *string   `db:"city"`
	Country    *string   `db:"country"`
	PostalCode *string   `db:"postal_code"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
