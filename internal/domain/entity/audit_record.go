package entity

import "time"

// Códigos de acción auditables (conjunto cerrado).
const (
	ActionStockInit      = "STOCK_INIT"
	ActionStockIn        = "STOCK_IN"
	ActionStockOut       = "STOCK_OUT"
	ActionTicketConsume  = "TICKET_CONSUME"
	ActionTicketPrint    = "TICKET_PRINT"
	ActionProductCreate  = "PRODUCT_CREATE"
	ActionProductUpdate  = "PRODUCT_UPDATE"
	ActionCategoryCreate = "CATEGORY_CREATE"
	ActionUserCreate     = "USER_CREATE"
	ActionUserUpdate     = "USER_UPDATE"
)

// AuditRecord es un registro inmutable del log de auditoría (append-only).
// Before/After/Metadata se guardan como JSON opaco en texto; el esquema no los tipa.
// Una vez escrito nunca se actualiza ni se borra.
type AuditRecord struct {
	ID        string
	Action    string
	Entity    string
	EntityID  string
	UserID    string
	Before    *string
	After     *string
	Metadata  *string
	CreatedAt time.Time
}
