package request

import "encoding/json"

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	// Price accepts a JSON number such as 19.99; it is converted to cents.
	Price      json.Number `json:"price" validate:"required"`
	Stock      int         `json:"stock" validate:"min=0"`
	CategoryID *string     `json:"category" validate:"omitempty,uuid"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	// Slug is derived from Name when empty.
	Slug string `json:"slug" validate:"omitempty,max=120"`
}
