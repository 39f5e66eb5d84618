package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/favorite"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// FavoriteHandler maneja las peticiones HTTP para favoritos del usuario (protegido).
type FavoriteHandler struct {
	svc *favorite.Service
}

// NewFavoriteHandler construye el handler.
func NewFavoriteHandler(svc *favorite.Service) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// Add godoc
// @Summary      Marcar producto como favorito
// @Tags         favorites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddFavoriteRequest  true  "Producto"
// @Success      201   {object}  dto.FavoriteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var in dto.AddFavoriteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Add(c.Context(), GetUserID(c), in.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
		case errors.Is(err, domain.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el producto ya es favorito"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toFavoriteResponse(out))
}

// Remove godoc
// @Summary      Quitar producto de favoritos
// @Tags         favorites
// @Security     Bearer
// @Param        product_id  path  string  true  "ID del producto"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/favorites/{product_id} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	if err := h.svc.Remove(c.Context(), GetUserID(c), c.Params("product_id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "favorito no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar favoritos del usuario autenticado
// @Tags         favorites
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FavoriteResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.ListByUser(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.FavoriteResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFavoriteResponse(f))
	}
	return c.JSON(out)
}

func toFavoriteResponse(f *entity.Favorite) dto.FavoriteResponse {
	return dto.FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
		CreatedAt: f.CreatedAt,
	}
}
