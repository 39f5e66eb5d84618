package dto

import "time"

// AddFavoriteRequest body para POST /api/favorites.
type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// FavoriteResponse favorito en respuestas.
type FavoriteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
