package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// AuditHandler expone la consulta del log de auditoría (solo admin).
type AuditHandler struct {
	query *audit.Query
}

// NewAuditHandler construye el handler.
func NewAuditHandler(query *audit.Query) *AuditHandler {
	return &AuditHandler{query: query}
}

// List godoc
// @Summary      Listar registros de auditoría (solo admin)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity     query  string  false  "Filtrar por entidad (requiere entity_id)"
// @Param        entity_id  query  string  false  "ID de la entidad"
// @Param        user_id    query  string  false  "Filtrar por usuario autor"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {array}  dto.AuditRecordResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)

	var (
		items []*entity.AuditRecord
		err   error
	)
	switch {
	case c.Query("entity") != "" || c.Query("entity_id") != "":
		items, err = h.query.ListByEntity(c.Context(), c.Query("entity"), c.Query("entity_id"), page.Limit, page.Offset)
	case c.Query("user_id") != "":
		items, err = h.query.ListByUser(c.Context(), c.Query("user_id"), page.Limit, page.Offset)
	default:
		items, err = h.query.List(c.Context(), page.Limit, page.Offset)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entity y entity_id van juntos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.AuditRecordResponse, 0, len(items))
	for _, r := range items {
		out = append(out, dto.AuditRecordResponse{
			ID:        r.ID,
			Action:    r.Action,
			Entity:    r.Entity,
			EntityID:  r.EntityID,
			UserID:    r.UserID,
			Before:    r.Before,
			After:     r.After,
			Metadata:  r.Metadata,
			CreatedAt: r.CreatedAt,
		})
	}
	return c.JSON(out)
}
