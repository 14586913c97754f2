package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description" validate:"max=1000"`
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode           string          `json:"barcode" validate:"max=100"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	InitialQuantity   int64           `json:"initialQuantity" validate:"min=0"`
	MinimumStockLevel int64           `json:"minimumStockLevel" validate:"min=0"`
	CategoryID        string          `json:"categoryId"`
}

// UpdateProductRequest entrada para actualizar un producto. Quantity no
// aparece: toda variación de existencias pasa por el ledger.
type UpdateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description" validate:"max=1000"`
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode           string          `json:"barcode" validate:"max=100"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	MinimumStockLevel int64           `json:"minimumStockLevel" validate:"min=0"`
	CategoryID        string          `json:"categoryId"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SKU               string          `json:"sku"`
	Barcode           string          `json:"barcode,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	Quantity          int64           `json:"quantity"`
	MinimumStockLevel int64           `json:"minimumStockLevel"`
	CategoryID        string          `json:"categoryId,omitempty"`
	IsLowStock        bool            `json:"isLowStock"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
