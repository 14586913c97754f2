package repository

import (
	"context"
	"time"

	"github.com/dcamposl/gestock-api/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia para el libro de movimientos.
// Append-only: no expone Update ni Delete. Todos los listados vienen
// ordenados del más reciente al más antiguo.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListAll(ctx context.Context) ([]*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// ListByDateRange filtra por created_at dentro de [from, to] inclusive.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error)
	ListPage(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error)
	Count(ctx context.Context) (int, error)
}
