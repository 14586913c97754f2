package ledger

import (
	"context"

	"github.com/dcamposl/gestock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización de existencias
// y el asiento del movimiento se persisten como una sola unidad de trabajo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
