package dto

import "time"

// AuditRecordResponse registro de auditoría en respuestas. Before/After/Metadata
// se exponen tal como se guardaron (JSON opaco en texto).
type AuditRecordResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	UserID    string    `json:"user_id"`
	Before    *string   `json:"before,omitempty"`
	After     *string   `json:"after,omitempty"`
	Metadata  *string   `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
