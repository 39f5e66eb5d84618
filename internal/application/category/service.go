package category

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// Service casos de uso de categorías.
type Service struct {
	categories repository.CategoryRepository
	auditor    *audit.Recorder
}

// NewService construye el servicio de categorías.
func NewService(categories repository.CategoryRepository, auditor *audit.Recorder) *Service {
	return &Service{categories: categories, auditor: auditor}
}

// Create crea una categoría (solo admin; el rol se verifica en la capa HTTP)
// y registra CATEGORY_CREATE.
func (s *Service) Create(ctx context.Context, name, code, userID string) (*entity.Category, error) {
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	if _, err := s.auditor.Record(ctx, audit.Entry{
		Action:   entity.ActionCategoryCreate,
		Entity:   "Category",
		EntityID: c.ID,
		UserID:   userID,
		After:    c,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

// List lista categorías con paginación.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	return s.categories.List(ctx, limit, offset)
}
