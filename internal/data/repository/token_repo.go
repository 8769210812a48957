package repository

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenRepository persists the refresh-token blacklist.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
	CleanExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

// Revoke blacklists jti. It reports false when the token was already revoked.
func (r *tokenRepository) Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) (bool, error) {
	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (jti) DO NOTHING
	`

	revoked := entity.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	result, err := r.db.Exec(ctx, query, revoked.JTI, revoked.UserID, revoked.ExpiresAt)
	if err != nil {
		r.log.Error("Failed to revoke token",
			zap.Error(err),
			zap.String("jti", jti),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("revoke token %s: %w", jti, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`

	var revoked bool
	if err := r.db.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		r.log.Error("Failed to check revoked token",
			zap.Error(err),
			zap.String("jti", jti),
		)
		return false, fmt.Errorf("check revoked token %s: %w", jti, err)
	}

	return revoked, nil
}

// CleanExpired drops blacklist entries whose token has expired anyway.
func (r *tokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired tokens", zap.Error(err))
		return 0, fmt.Errorf("clean expired tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
