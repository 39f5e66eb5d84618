package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// Service casos de uso del catálogo de productos. La cantidad no se toca aquí:
// al crear un producto se inicializa su Stock (una sola vez) y de ahí en
// adelante solo cambia vía movimientos del servicio de stock.
type Service struct {
	products repository.ProductRepository
	stockSvc *stock.Service
	auditor  *audit.Recorder
}

// NewService construye el servicio de productos.
func NewService(products repository.ProductRepository, stockSvc *stock.Service, auditor *audit.Recorder) *Service {
	return &Service{products: products, stockSvc: stockSvc, auditor: auditor}
}

// Create crea un producto, inicializa su stock con la cantidad inicial
// (0 si no se indica) y registra PRODUCT_CREATE.
func (s *Service) Create(ctx context.Context, in dto.CreateProductRequest, userID string) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		existing, err := s.products.GetByBarcode(ctx, in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Code:        in.Code,
		Barcode:     in.Barcode,
		CategoryID:  in.CategoryID,
		Active:      true,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.stockSvc.Initialize(ctx, stock.InitializeInput{
		ProductID: p.ID,
		Quantity:  in.InitialQuantity,
		UserID:    userID,
	}); err != nil {
		return nil, err
	}

	if _, err := s.auditor.Record(ctx, audit.Entry{
		Action:   entity.ActionProductCreate,
		Entity:   "Product",
		EntityID: p.ID,
		UserID:   userID,
		After:    p,
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update modifica los campos editables y registra PRODUCT_UPDATE con before/after.
func (s *Service) Update(ctx context.Context, id string, in dto.UpdateProductRequest, userID string) (*entity.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := p.Clone()

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	if _, err := s.auditor.Record(ctx, audit.Entry{
		Action:   entity.ActionProductUpdate,
		Entity:   "Product",
		EntityID: p.ID,
		UserID:   userID,
		Before:   before,
		After:    p,
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto o domain.ErrProductNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// GetByBarcode devuelve un producto por código de barras o domain.ErrProductNotFound.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	p, err := s.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// List lista productos con búsqueda por nombre (insensible a acentos) y paginación.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	return s.products.List(ctx, search, limit, offset)
}
