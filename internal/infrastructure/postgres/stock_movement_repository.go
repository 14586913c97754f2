package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, reason, notes, created_by, created_at`

// StockMovementRepo implementación append-only del libro de movimientos
// sobre PostgreSQL (usable con pool o tx). No existe UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create apendiza un asiento al libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.Notes,
		nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListAll devuelve todos los movimientos, más recientes primero.
func (r *StockMovementRepo) ListAll(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.listBy(ctx, `SELECT `+movementColumns+` FROM stock_movements ORDER BY created_at DESC`)
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.listBy(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC`,
		productID,
	)
}

// ListByDateRange devuelve los movimientos con created_at en [from, to] inclusive.
func (r *StockMovementRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error) {
	return r.listBy(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at DESC`,
		from, to,
	)
}

// ListPage devuelve una porción del listado, más recientes primero.
func (r *StockMovementRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listBy(ctx,
		`SELECT `+movementColumns+` FROM stock_movements ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

// Count devuelve el total de movimientos.
func (r *StockMovementRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return count, nil
}

func (r *StockMovementRepo) listBy(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var createdBy *string
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Notes, &createdBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
