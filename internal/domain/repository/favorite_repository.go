package repository

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// FavoriteRepository define el puerto de persistencia para Favorite.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.Favorite) error
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error)
	DeleteByUserAndProduct(ctx context.Context, userID, productID string) error
}
