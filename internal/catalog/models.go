package catalog

import "time"

const StatusAvailable = "Available"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CatalogType string    `json:"catalogType"`
	Detail      string    `json:"detail"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Image       string    `json:"image"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter menyaring listing katalog. CatalogType "All" atau kosong = tanpa filter.
type Filter struct {
	CatalogType string
	Search      string
}

type CreateInput struct {
	Name        string  `json:"name" validate:"required"`
	CatalogType string  `json:"catalogType" validate:"required"`
	Detail      string  `json:"detail"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Status      string  `json:"status"`
	Image       string  `json:"image"`
}

// UpdateInput: price/stock nil berarti pertahankan nilai lama.
type UpdateInput struct {
	Name        string   `json:"name" validate:"required"`
	CatalogType string   `json:"catalogType" validate:"required"`
	Detail      string   `json:"detail"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Status      string   `json:"status"`
	Image       string   `json:"image"`
}
