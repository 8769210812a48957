package entity

import "github.com/google/uuid"

// Category groups products. Inactive categories are hidden from listings
// and cannot receive new products.
type Category struct {
	Record
	Name     string `db:"name"`
	Slug     string `db:"slug"`
	IsActive bool   `db:"is_active"`
}

// Product is a listing owned by a seller. Price is stored in cents.
type Product struct {
	Record
	SellerID    uuid.UUID  `db:"seller_id"`
	CategoryID  *uuid.UUID `db:"category_id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	PriceCents  int64      `db:"price_cents"`
	Stock       int        `db:"stock"`
}
