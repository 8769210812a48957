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

// CategoryCount is a listed category with the number of products filed under it.
type CategoryCount struct {
	entity.Category
	ProductCount int64
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListActive(ctx context.Context) ([]CategoryCount, error)
}

var categoryConstraints = map[string]string{
	"categories_name_key": "name",
	"categories_slug_key": "slug",
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Slug, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if dup, ok := asDuplicate(err, categoryConstraints); ok {
		r.log.Warn("Duplicate category on insert",
			zap.String("field", dup.Field),
			zap.String("slug", c.Slug),
		)
		return dup
	}
	if err != nil {
		r.log.Error("Failed to create category", zap.Error(err), zap.String("name", c.Name))
		return fmt.Errorf("create category %s: %w", c.Slug, err)
	}

	return nil
}

// FindByID returns nil, nil when the category does not exist.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `
		SELECT id, name, slug, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var c entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by ID",
			zap.Error(err),
			zap.String("category_id", id.String()),
		)
		return nil, fmt.Errorf("find category %s: %w", id.String(), err)
	}

	return &c, nil
}

// ListActive returns active categories ordered by name.
func (r *categoryRepository) ListActive(ctx context.Context) ([]CategoryCount, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.is_active, c.created_at, c.updated_at,
		       COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.is_active
		GROUP BY c.id
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CategoryCount, error) {
		var c CategoryCount
		err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.ProductCount)
		return c, err
	})
	if err != nil {
		r.log.Error("Failed to scan category rows", zap.Error(err))
		return nil, fmt.Errorf("scan categories: %w", err)
	}

	return categories, nil
}
