package dto

import "time"

// ConsumeRequest body para POST /api/tickets/consume.
type ConsumeRequest struct {
	Barcode string `json:"barcode"`
}

// TicketResponse ticket en respuestas.
type TicketResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Printed   int       `json:"printed"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
