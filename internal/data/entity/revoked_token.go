package entity

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken is a blacklisted refresh token, identified by its jti claim.
type RevokedToken struct {
	JTI       string    `db:"jti"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	RevokedAt time.Time `db:"revoked_at"`
}
