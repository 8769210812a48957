package repository

import (
	"context"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, seller_id, category_id, name, description,
		                      price_cents, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.SellerID,
		p.CategoryID,
		p.Name,
		p.Description,
		p.PriceCents,
		p.Stock,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("seller_id", p.SellerID.String()),
			zap.String("name", p.Name),
		)
		return fmt.Errorf("create product %s: %w", p.Name, err)
	}

	return nil
}
