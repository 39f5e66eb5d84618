package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// Service casos de uso de favoritos (vista "home" del usuario).
type Service struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
}

// NewService construye el servicio de favoritos.
func NewService(favorites repository.FavoriteRepository, products repository.ProductRepository) *Service {
	return &Service{favorites: favorites, products: products}
}

// Add marca un producto como favorito del usuario. Idempotente-rechazante:
// si el par usuario-producto ya existe devuelve domain.ErrDuplicate.
func (s *Service) Add(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	if userID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	existing, err := s.favorites.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	f := &entity.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove quita el favorito del usuario para el producto.
func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	existing, err := s.favorites.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return s.favorites.DeleteByUserAndProduct(ctx, userID, productID)
}

// ListByUser lista los favoritos del usuario.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}
