package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeAdd        = "Add"        // entrada: delta positivo
	MovementTypeRemove     = "Remove"     // salida: delta negativo
	MovementTypeAdjustment = "Adjustment" // ajuste a valor absoluto: delta con signo
)

// ValidMovementType indica si t es uno de los tres tipos conocidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeAdd || t == MovementTypeRemove || t == MovementTypeAdjustment
}

// StockMovement es un asiento del libro de movimientos. Inmutable: una vez
// creado nunca se actualiza ni se elimina (solo cae en cascada con su producto).
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // Add, Remove, Adjustment
	Quantity  int64  // delta con signo aplicado al producto
	Reason    string
	Notes     string
	CreatedBy string // username del autor, vacío si no se conoce
	CreatedAt time.Time
}
