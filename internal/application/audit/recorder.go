package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// Recorder escribe registros inmutables en el log de auditoría.
// Serializa before/after/metadata a JSON opaco (texto) y delega la escritura al
// repositorio. Nunca falla en silencio: los errores de persistencia se propagan
// al caller, que decide qué hacer con ellos (el servicio de stock NO revierte
// el cambio ya persistido; ver DESIGN.md).
type Recorder struct {
	repo repository.AuditRepository
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Entry es la entrada para Record. Before/After/Metadata son opcionales.
type Entry struct {
	Action   string
	Entity   string
	EntityID string
	UserID   string
	Before   any
	After    any
	Metadata map[string]any
}

// Record serializa la entrada y agrega exactamente un registro al log.
func (r *Recorder) Record(ctx context.Context, in Entry) (*entity.AuditRecord, error) {
	if in.Action == "" || in.Entity == "" || in.EntityID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	before, err := marshalOptional(in.Before)
	if err != nil {
		return nil, fmt.Errorf("audit: serializar before: %w", err)
	}
	after, err := marshalOptional(in.After)
	if err != nil {
		return nil, fmt.Errorf("audit: serializar after: %w", err)
	}
	var metadata *string
	if len(in.Metadata) > 0 {
		metadata, err = marshalOptional(in.Metadata)
		if err != nil {
			return nil, fmt.Errorf("audit: serializar metadata: %w", err)
		}
	}
	record := &entity.AuditRecord{
		Action:    in.Action,
		Entity:    in.Entity,
		EntityID:  in.EntityID,
		UserID:    in.UserID,
		Before:    before,
		After:     after,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
	return r.repo.Save(ctx, record)
}

// marshalOptional serializa v a JSON como *string; nil entra, nil sale.
func marshalOptional(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
