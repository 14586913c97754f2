package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Quantity se modifica
// únicamente a través del libro de movimientos (ledger); nunca queda negativo.
type Product struct {
	ID                string
	Name              string
	Description       string
	SKU               string // código único, sensible a mayúsculas
	Barcode           string // único si no está vacío
	Price             decimal.Decimal
	Cost              decimal.Decimal
	Quantity          int64
	MinimumStockLevel int64
	CategoryID        string // vacío si no tiene categoría
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si la existencia actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumStockLevel
}
