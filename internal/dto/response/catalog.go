package response

import (
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/pkg/utils"
)

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int64  `json:"product_count"`
}

// CategoryRef is the category embedded in a product.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Price       string       `json:"price"`
	Stock       int          `json:"stock"`
	SellerID    string       `json:"seller_id"`
	Category    *CategoryRef `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
}

func CategoryToResponse(c repository.CategoryCount) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Slug:         c.Slug,
		ProductCount: c.ProductCount,
	}
}

func ProductToResponse(p *entity.Product, category *entity.Category) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       utils.FormatCents(p.PriceCents),
		Stock:       p.Stock,
		SellerID:    p.SellerID.String(),
		CreatedAt:   p.CreatedAt,
	}
	if category != nil {
		resp.Category = &CategoryRef{ID: category.ID.String(), Name: category.Name, Slug: category.Slug}
	}
	return resp
}
