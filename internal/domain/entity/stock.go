package entity

import (
	"time"

	"github.com/tu-usuario/backoffice-api/internal/domain"
)

// Stock representa la existencia actual de un producto (un registro por producto).
// La cantidad solo se modifica a través de Increase/Decrease; nunca por asignación
// directa. Version respalda la escritura condicional del repositorio.
type Stock struct {
	id        string
	productID string
	quantity  int64
	version   int64
	updatedAt time.Time
}

// NewStock crea un Stock nuevo (sin ID hasta persistir). Rechaza cantidad inicial negativa.
func NewStock(productID string, quantity int64) (*Stock, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	return &Stock{productID: productID, quantity: quantity}, nil
}

// RestoreStock rehidrata un Stock desde persistencia. Solo para repositorios.
func RestoreStock(id, productID string, quantity, version int64, updatedAt time.Time) *Stock {
	return &Stock{
		id:        id,
		productID: productID,
		quantity:  quantity,
		version:   version,
		updatedAt: updatedAt,
	}
}

// ID devuelve el identificador (vacío hasta la primera persistencia).
func (s *Stock) ID() string { return s.id }

// ProductID devuelve el producto al que pertenece este registro.
func (s *Stock) ProductID() string { return s.productID }

// Quantity devuelve la cantidad actual. Sin efectos secundarios.
func (s *Stock) Quantity() int64 { return s.quantity }

// Version devuelve la versión usada por la escritura condicional.
func (s *Stock) Version() int64 { return s.version }

// UpdatedAt devuelve la fecha de la última escritura persistida.
func (s *Stock) UpdatedAt() time.Time { return s.updatedAt }

// Increase suma value a la cantidad. Rechaza value <= 0.
func (s *Stock) Increase(value int64) error {
	if value <= 0 {
		return domain.ErrInvalidInput
	}
	s.quantity += value
	return nil
}

// Decrease resta value de la cantidad. Rechaza value <= 0 y nunca deja la
// cantidad en negativo: si value > quantity falla sin mutar el estado.
func (s *Stock) Decrease(value int64) error {
	if value <= 0 {
		return domain.ErrInvalidInput
	}
	if s.quantity-value < 0 {
		return domain.ErrInsufficientStock
	}
	s.quantity -= value
	return nil
}

// Clone devuelve una copia independiente (snapshot "before" para auditoría).
func (s *Stock) Clone() *Stock {
	c := *s
	return &c
}

// StockSnapshot es la vista serializable del Stock para auditoría y respuestas HTTP.
type StockSnapshot struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Version   int64     `json:"version,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Snapshot devuelve la vista serializable del estado actual.
func (s *Stock) Snapshot() StockSnapshot {
	return StockSnapshot{
		ID:        s.id,
		ProductID: s.productID,
		Quantity:  s.quantity,
		Version:   s.version,
		UpdatedAt: s.updatedAt,
	}
}
