package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación append-only del log de auditoría sobre PostgreSQL.
// Solo existen INSERT y SELECT; la tabla no se actualiza ni se borra.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Save agrega un registro inmutable al log.
func (r *AuditRepo) Save(ctx context.Context, record *entity.AuditRecord) (*entity.AuditRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, action, entity, entity_id, user_id, before, after, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.Action, record.Entity, record.EntityID, record.UserID,
		record.Before, record.After, record.Metadata, record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert audit log: %w", err)
	}
	return record, nil
}

const auditSelect = `
	SELECT id, action, entity, entity_id, user_id, before, after, metadata, created_at
	FROM audit_logs`

// ListByEntity lista registros de una entidad, más recientes primero.
func (r *AuditRepo) ListByEntity(ctx context.Context, entityName, entityID string, limit, offset int) ([]*entity.AuditRecord, error) {
	query := auditSelect + `
		WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, entityName, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit by entity: %w", err)
	}
	return scanAuditRows(rows)
}

// ListByUser lista registros de un actor, más recientes primero.
func (r *AuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditRecord, error) {
	query := auditSelect + `
		WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit by user: %w", err)
	}
	return scanAuditRows(rows)
}

// List lista todos los registros, más recientes primero.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditRecord, error) {
	query := auditSelect + `
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return scanAuditRows(rows)
}

func scanAuditRows(rows pgx.Rows) ([]*entity.AuditRecord, error) {
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		var rec entity.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.Entity, &rec.EntityID, &rec.UserID,
			&rec.Before, &rec.After, &rec.Metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
