package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/ticket"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// TicketHandler maneja las peticiones HTTP para tickets de consumo (protegido).
type TicketHandler struct {
	svc *ticket.Service
}

// NewTicketHandler construye el handler.
func NewTicketHandler(svc *ticket.Service) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Consume godoc
// @Summary      Consumir una unidad por código de barras
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "Código de barras del producto"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tickets/consume [post]
func (h *TicketHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode es requerido"})
	}
	out, err := h.svc.Consume(c.Context(), in.Barcode, GetUserID(c))
	if err != nil {
		return ticketError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTicketResponse(out))
}

// GetByID godoc
// @Summary      Obtener ticket por ID
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return ticketError(c, err)
	}
	return c.JSON(toTicketResponse(out))
}

// List godoc
// @Summary      Listar tickets
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.TicketResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, err := h.svc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TicketResponse, 0, len(items))
	for _, tk := range items {
		out = append(out, toTicketResponse(tk))
	}
	return c.JSON(out)
}

// Print godoc
// @Summary      Registrar una impresión del ticket
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/print [post]
func (h *TicketHandler) Print(c *fiber.Ctx) error {
	out, err := h.svc.Print(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return ticketError(c, err)
	}
	return c.JSON(toTicketResponse(out))
}

// Receipt godoc
// @Summary      Descargar la tirilla PDF del ticket
// @Tags         tickets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/pdf [get]
func (h *TicketHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.svc.Receipt(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return ticketError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ticket-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// Delete godoc
// @Summary      Eliminar ticket (solo admin)
// @Tags         tickets
// @Security     Bearer
// @Param        id   path  string  true  "ID del ticket"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return ticketError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ticketError traduce los errores del flujo de tickets a códigos HTTP.
func ticketError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrTicketNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
	case errors.Is(err, domain.ErrStockNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "stock no inicializado para el producto"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toTicketResponse(tk *entity.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:        tk.ID,
		ProductID: tk.ProductID,
		Printed:   tk.Printed,
		CreatedBy: tk.CreatedBy,
		CreatedAt: tk.CreatedAt,
		UpdatedAt: tk.UpdatedAt,
	}
}
