package domain

import "context"

type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
}

type ProductFilter struct {
	Query    string
	Category string
}

// Catalog is the remote product API.
type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int64, p Product) (*Product, error)
}
