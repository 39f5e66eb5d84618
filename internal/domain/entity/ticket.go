package entity

import "time"

// Ticket representa un registro de consumo/impresión de un producto.
// Printed solo se incrementa vía Print(); nunca por asignación directa externa.
type Ticket struct {
	ID        string
	ProductID string
	Printed   int
	CreatedBy string // UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Print incrementa el contador de impresiones.
func (t *Ticket) Print() {
	t.Printed++
}

// Clone devuelve una copia independiente (snapshot "before" para auditoría).
func (t *Ticket) Clone() *Ticket {
	c := *t
	return &c
}
