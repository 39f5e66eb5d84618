package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// ReasonConsume es el motivo registrado en el movimiento de salida por consumo.
const ReasonConsume = "TICKET_CONSUME"

// ReceiptPDFGenerator genera el comprobante imprimible de un ticket.
type ReceiptPDFGenerator interface {
	GenerateTicketReceipt(ctx context.Context, ticket *entity.Ticket, product *entity.Product) ([]byte, error)
}

// Service maneja tickets (registros de consumo/impresión) sobre el catálogo.
// Consume es el flujo principal: resuelve el producto, descuenta una unidad del
// stock y deja el rastro de auditoría.
type Service struct {
	tickets  repository.TicketRepository
	products repository.ProductRepository
	stockSvc *stock.Service
	auditor  *audit.Recorder
	receipts ReceiptPDFGenerator
}

// NewService construye el servicio de tickets.
func NewService(
	tickets repository.TicketRepository,
	products repository.ProductRepository,
	stockSvc *stock.Service,
	auditor *audit.Recorder,
	receipts ReceiptPDFGenerator,
) *Service {
	return &Service{tickets: tickets, products: products, stockSvc: stockSvc, auditor: auditor, receipts: receipts}
}

// Consume registra el consumo de una unidad del producto identificado por su
// código de barras: descuenta 1 del stock (motivo TICKET_CONSUME), crea el
// ticket y escribe un segundo registro TICKET_CONSUME a nivel Product.
//
// Un consumo produce DOS registros de auditoría: el STOCK_OUT que emite el
// servicio de stock sobre la entidad Stock, y el TICKET_CONSUME sobre la
// entidad Product. Son registros independientes, sin id de correlación.
func (s *Service) Consume(ctx context.Context, barcode, userID string) (*entity.Ticket, error) {
	if barcode == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := s.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if _, err := s.stockSvc.Decrease(ctx, stock.MovementInput{
		ProductID: product.ID,
		Quantity:  1,
		Reason:    ReasonConsume,
		UserID:    userID,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	tk := &entity.Ticket{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Printed:   0,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tickets.Create(ctx, tk); err != nil {
		return nil, err
	}

	if _, err := s.auditor.Record(ctx, audit.Entry{
		Action:   entity.ActionTicketConsume,
		Entity:   "Product",
		EntityID: product.ID,
		UserID:   userID,
		Metadata: map[string]any{"ticket_id": tk.ID, "barcode": barcode},
	}); err != nil {
		return nil, err
	}
	return tk, nil
}

// GetByID devuelve un ticket o domain.ErrTicketNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	tk, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tk == nil {
		return nil, domain.ErrTicketNotFound
	}
	return tk, nil
}

// List lista tickets con paginación.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.Ticket, error) {
	return s.tickets.List(ctx, limit, offset)
}

// Print incrementa el contador de impresiones del ticket y registra TICKET_PRINT.
func (s *Service) Print(ctx context.Context, id, userID string) (*entity.Ticket, error) {
	tk, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := tk.Clone()
	tk.Print()
	tk.UpdatedAt = time.Now()
	if err := s.tickets.Update(ctx, tk); err != nil {
		return nil, err
	}
	if _, err := s.auditor.Record(ctx, audit.Entry{
		Action:   entity.ActionTicketPrint,
		Entity:   "Ticket",
		EntityID: tk.ID,
		UserID:   userID,
		Before:   before,
		After:    tk,
	}); err != nil {
		return nil, err
	}
	return tk, nil
}

// Receipt genera el PDF de la tirilla del ticket. La generación cuenta como
// impresión: incrementa el contador y registra TICKET_PRINT antes de renderizar.
func (s *Service) Receipt(ctx context.Context, id, userID string) ([]byte, error) {
	tk, err := s.Print(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, tk.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return s.receipts.GenerateTicketReceipt(ctx, tk, product)
}

// Delete elimina un ticket (solo admin; el rol se verifica en la capa HTTP).
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tickets.Delete(ctx, id)
}
