package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// InitialQuantity alimenta la inicialización del stock (default 0).
type CreateProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Code            string          `json:"code,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	CategoryID      string          `json:"category_id,omitempty"`
	InitialQuantity int64           `json:"initial_quantity,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Code        string          `json:"code,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
