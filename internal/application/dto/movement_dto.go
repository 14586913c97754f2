package dto

import "time"

// StockMovementRequest entrada para add/remove/adjust.
// Para Add/Remove, Quantity es la cantidad a mover (> 0).
// Para Adjust, Quantity es la existencia absoluta final (>= 0).
type StockMovementRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason" validate:"max=200"`
	Notes     string `json:"notes" validate:"max=1000"`
}

// StockMovementResponse asiento del ledger enriquecido con datos del producto.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	ProductSKU  string    `json:"productSku"`
	Type        string    `json:"movementType"`
	Quantity    int64     `json:"quantity"` // delta con signo
	Reason      string    `json:"reason,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
