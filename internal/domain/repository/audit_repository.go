package repository

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia para el log de auditoría.
// Append-only: no existe Update ni Delete.
type AuditRepository interface {
	Save(ctx context.Context, record *entity.AuditRecord) (*entity.AuditRecord, error)
	ListByEntity(ctx context.Context, entityName, entityID string, limit, offset int) ([]*entity.AuditRecord, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.AuditRecord, error)
}
