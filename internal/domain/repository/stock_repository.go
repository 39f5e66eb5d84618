package repository

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para Stock (DIP).
// Save es una escritura condicional: inserta si el Stock no tiene ID; si lo
// tiene, actualiza solo cuando (id, version) coinciden con lo leído y devuelve
// domain.ErrVersionConflict en caso contrario. El servicio de stock usa ese
// error para recargar y reintentar la mutación completa.
type StockRepository interface {
	// FindByProductID devuelve el Stock del producto o nil si no existe.
	FindByProductID(ctx context.Context, productID string) (*entity.Stock, error)
	// Save persiste el Stock y devuelve el estado guardado (con ID y versión nuevos).
	Save(ctx context.Context, stock *entity.Stock) (*entity.Stock, error)
}
