package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.FavoriteRepository = (*FavoriteRepo)(nil)

// FavoriteRepo implementación de FavoriteRepository sobre PostgreSQL (usable con pool o tx).
type FavoriteRepo struct {
	q Querier
}

// NewFavoriteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

// Create persiste un favorito (único por usuario-producto).
func (r *FavoriteRepo) Create(ctx context.Context, favorite *entity.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query,
		favorite.ID, favorite.UserID, favorite.ProductID, favorite.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// GetByUserAndProduct obtiene el favorito del par usuario-producto, o nil si no existe.
func (r *FavoriteRepo) GetByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	query := `
		SELECT id, user_id, product_id, created_at
		FROM favorites WHERE user_id = $1 AND product_id = $2`
	var f entity.Favorite
	err := r.q.QueryRow(ctx, query, userID, productID).Scan(
		&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return &f, nil
}

// ListByUser lista los favoritos de un usuario.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	query := `
		SELECT id, user_id, product_id, created_at
		FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Favorite
	for rows.Next() {
		var f entity.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// DeleteByUserAndProduct elimina el favorito del par usuario-producto.
func (r *FavoriteRepo) DeleteByUserAndProduct(ctx context.Context, userID, productID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
