package repository

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List filtra por nombre normalizado (sin acentos, case-insensitive) si search no es vacío.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
}
