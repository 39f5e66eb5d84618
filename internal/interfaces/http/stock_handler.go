package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	svc *stock.Service
}

// NewStockHandler construye el handler.
func NewStockHandler(svc *stock.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

// Initialize godoc
// @Summary      Inicializar stock de un producto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitializeStockRequest  true  "Producto y cantidad inicial"
// @Success      201   {object}  entity.StockSnapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/initialize [post]
func (h *StockHandler) Initialize(c *fiber.Ctx) error {
	var in dto.InitializeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Initialize(c.Context(), stock.InitializeInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out.Snapshot())
}

// Increase godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "Producto, cantidad y motivo"
// @Success      200   {object}  entity.StockSnapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/increase [post]
func (h *StockHandler) Increase(c *fiber.Ctx) error {
	return h.move(c, h.svc.Increase)
}

// Decrease godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "Producto, cantidad y motivo"
// @Success      200   {object}  entity.StockSnapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/decrease [post]
func (h *StockHandler) Decrease(c *fiber.Ctx) error {
	return h.move(c, h.svc.Decrease)
}

// Get godoc
// @Summary      Consultar stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  entity.StockSnapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	out, err := h.svc.Get(c.Context(), productID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out.Snapshot())
}

// move parsea el body y delega en Increase o Decrease del servicio.
func (h *StockHandler) move(c *fiber.Ctx, op func(context.Context, stock.MovementInput) (*entity.Stock, error)) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := op(c.Context(), stock.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out.Snapshot())
}

// stockError traduce los errores de dominio del stock a códigos HTTP.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrStockNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "stock no inicializado para el producto"})
	case errors.Is(err, domain.ErrStockAlreadyInit):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_INITIALIZED", Message: "el producto ya tiene stock inicializado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
