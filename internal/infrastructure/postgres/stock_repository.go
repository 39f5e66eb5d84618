package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La actualización es condicional sobre (id, version): si ninguna fila coincide,
// otro escritor ganó la carrera y se devuelve domain.ErrVersionConflict.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// FindByProductID obtiene el stock de un producto, o nil si no existe.
func (r *StockRepo) FindByProductID(ctx context.Context, productID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, quantity, version, updated_at
		FROM stock_balances WHERE product_id = $1`
	var (
		id, pid           string
		quantity, version int64
		updatedAt         time.Time
	)
	err := r.q.QueryRow(ctx, query, productID).Scan(&id, &pid, &quantity, &version, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return entity.RestoreStock(id, pid, quantity, version, updatedAt), nil
}

// Save inserta el stock si no tiene ID; si lo tiene, hace la escritura
// condicional sobre (id, version). Devuelve el estado persistido.
func (r *StockRepo) Save(ctx context.Context, stock *entity.Stock) (*entity.Stock, error) {
	now := time.Now()
	if stock.ID() == "" {
		id := uuid.New().String()
		query := `
			INSERT INTO stock_balances (id, product_id, quantity, version, updated_at)
			VALUES ($1, $2, $3, 1, $4)`
		if _, err := r.q.Exec(ctx, query, id, stock.ProductID(), stock.Quantity(), now); err != nil {
			if isUniqueViolation(err) {
				// Unique(product_id): dos Initialize concurrentes; solo gana uno.
				return nil, domain.ErrStockAlreadyInit
			}
			return nil, fmt.Errorf("insert stock: %w", err)
		}
		return entity.RestoreStock(id, stock.ProductID(), stock.Quantity(), 1, now), nil
	}

	query := `
		UPDATE stock_balances
		SET quantity = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query, stock.ID(), stock.Version(), stock.Quantity(), now)
	if err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrVersionConflict
	}
	return entity.RestoreStock(stock.ID(), stock.ProductID(), stock.Quantity(), stock.Version()+1, now), nil
}
