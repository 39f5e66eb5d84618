package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. La existencia (cantidad) no vive
// aquí: se maneja en Stock vía movimientos; el catálogo solo describe el producto.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Code        string // código interno
	Barcode     string // código de barras, único si no vacío
	CategoryID  string
	Active      bool
	CreatedBy   string // UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone devuelve una copia independiente (snapshot "before" para auditoría).
func (p *Product) Clone() *Product {
	c := *p
	return &c
}
