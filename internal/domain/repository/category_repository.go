package repository

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
}
