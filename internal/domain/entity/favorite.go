package entity

import "time"

// Favorite marca un producto como favorito de un usuario (único por par usuario-producto).
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	CreatedAt time.Time
}
