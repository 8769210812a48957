package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	Create(ctx context.Context, userID uuid.UUID) error
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

// Create inserts an empty profile. It is a no-op when one already exists.
func (r *profileRepository) Create(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO profiles (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to create profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("create profile for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if err := r.Create(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, avatar, bio, address, city, country, postal_code,
		       created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p entity.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Avatar,
		&p.Bio,
		&p.Address,
		&p.City,
		&p.Country,
		&p.PostalCode,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// user row vanished between the insert and the select
		return nil, fmt.Errorf("profile for user %s not found", userID.String())
	}
	if err != nil {
		r.log.Error("Failed to get profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get profile for user %s: %w", userID.String(), err)
	}

	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles
		SET avatar = $2, bio = $3, address = $4, city = $5, country = $6,
		    postal_code = $7, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.UserID,
		p.Avatar,
		p.Bio,
		p.Address,
		p.City,
		p.Country,
		p.PostalCode,
	).Scan(&p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("profile for user %s not found", p.UserID.String())
	}
	if err != nil {
		r.log.Error("Failed to update profile",
			zap.Error(err),
			zap.String("user_id", p.UserID.String()),
		)
		return fmt.Errorf("update profile for user %s: %w", p.UserID.String(), err)
	}

	return nil
}
