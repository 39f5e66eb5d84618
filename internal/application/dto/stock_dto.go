package dto

// InitializeStockRequest body para POST /api/stock/initialize.
type InitializeStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// StockMovementRequest body para POST /api/stock/increase y /api/stock/decrease.
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}
