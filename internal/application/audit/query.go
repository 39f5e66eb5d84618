package audit

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// Query es el lado de lectura del log de auditoría (consulta, solo admin;
// el rol se verifica en la capa HTTP).
type Query struct {
	repo repository.AuditRepository
}

// NewQuery construye el lado de lectura.
func NewQuery(repo repository.AuditRepository) *Query {
	return &Query{repo: repo}
}

// ListByEntity lista los registros de una entidad concreta, más recientes primero.
func (q *Query) ListByEntity(ctx context.Context, entityName, entityID string, limit, offset int) ([]*entity.AuditRecord, error) {
	if entityName == "" || entityID == "" {
		return nil, domain.ErrInvalidInput
	}
	return q.repo.ListByEntity(ctx, entityName, entityID, limit, offset)
}

// ListByUser lista los registros producidos por un usuario, más recientes primero.
func (q *Query) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditRecord, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return q.repo.ListByUser(ctx, userID, limit, offset)
}

// List lista todos los registros, más recientes primero.
func (q *Query) List(ctx context.Context, limit, offset int) ([]*entity.AuditRecord, error) {
	return q.repo.List(ctx, limit, offset)
}
