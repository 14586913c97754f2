package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

var movementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gestock_stock_movements_total",
	Help: "Movimientos de stock registrados, por tipo.",
}, []string{"type"})

// UseCase es el libro de movimientos de stock. Cada operación de escritura
// corre en una transacción: lee el producto con bloqueo de fila
// (SELECT FOR UPDATE), valida, escribe la nueva existencia y apendiza el
// asiento. Movimientos concurrentes sobre el mismo producto se serializan en
// el lock, así la existencia nunca queda negativa.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	log          *logger.Logger
}

// NewUseCase construye el ledger.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo, log: log}
}

// AddStock suma quantity (> 0) a la existencia del producto y registra un
// asiento Add con delta +quantity.
func (uc *UseCase) AddStock(ctx context.Context, in dto.StockMovementRequest, createdBy string) (*dto.StockMovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, in, createdBy, entity.MovementTypeAdd, func(current int64) (int64, int64, error) {
		return current + in.Quantity, in.Quantity, nil
	})
}

// RemoveStock resta quantity (> 0) de la existencia del producto y registra
// un asiento Remove con delta -quantity. Falla con ErrInsufficientStock si
// quantity supera la existencia actual; en ese caso nada se persiste.
func (uc *UseCase) RemoveStock(ctx context.Context, in dto.StockMovementRequest, createdBy string) (*dto.StockMovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, in, createdBy, entity.MovementTypeRemove, func(current int64) (int64, int64, error) {
		if in.Quantity > current {
			return 0, 0, domain.ErrInsufficientStock
		}
		return current - in.Quantity, -in.Quantity, nil
	})
}

// AdjustStock fija la existencia del producto al valor absoluto in.Quantity
// (>= 0) y registra un asiento Adjustment con delta = objetivo - actual
// (puede ser cero, positivo o negativo).
func (uc *UseCase) AdjustStock(ctx context.Context, in dto.StockMovementRequest, createdBy string) (*dto.StockMovementResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, in, createdBy, entity.MovementTypeAdjustment, func(current int64) (int64, int64, error) {
		return in.Quantity, in.Quantity - current, nil
	})
}

// apply ejecuta la secuencia leer-validar-escribir-apendizar en una sola
// transacción. compute recibe la existencia actual y devuelve (nueva
// existencia, delta del asiento).
func (uc *UseCase) apply(
	ctx context.Context,
	in dto.StockMovementRequest,
	createdBy, movementType string,
	compute func(current int64) (newQuantity, delta int64, err error),
) (*dto.StockMovementResponse, error) {
	var out *dto.StockMovementResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newQuantity, delta, err := compute(product.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQuantity); err != nil {
			return err
		}
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      movementType,
			Quantity:  delta,
			Reason:    in.Reason,
			Notes:     in.Notes,
			CreatedBy: createdBy,
			CreatedAt: time.Now().UTC(),
		}
		if err := movementRepo.Create(ctx, movement); err != nil {
			return err
		}
		product.Quantity = newQuantity
		out = toMovementResponse(movement, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	movementsTotal.WithLabelValues(movementType).Inc()
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("type", movementType).
		Int64("delta", out.Quantity).
		Msg("movimiento de stock registrado")
	return out, nil
}

// ListAll devuelve todos los movimientos, del más reciente al más antiguo.
func (uc *UseCase) ListAll(ctx context.Context) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, movements)
}

// ListByProduct devuelve los movimientos de un producto.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, movements)
}

// ListByDateRange devuelve los movimientos con created_at dentro de
// [from, to] inclusive.
func (uc *UseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]dto.StockMovementResponse, error) {
	movements, err := uc.movementRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, movements)
}

// ListPage devuelve una página 1-indexada de movimientos.
func (uc *UseCase) ListPage(ctx context.Context, pageNumber, pageSize int) (*dto.PagedResult[dto.StockMovementResponse], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	total, err := uc.movementRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListPage(ctx, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, err
	}
	items, err := uc.enrich(ctx, movements)
	if err != nil {
		return nil, err
	}
	page := dto.NewPagedResult(items, total, pageNumber, pageSize)
	return &page, nil
}

// enrich resuelve nombre y SKU del producto de cada asiento. Productos
// eliminados no aparecen: sus movimientos cayeron en cascada.
func (uc *UseCase) enrich(ctx context.Context, movements []*entity.StockMovement) ([]dto.StockMovementResponse, error) {
	products := make(map[string]*entity.Product)
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		product, ok := products[m.ProductID]
		if !ok {
			var err error
			product, err = uc.productRepo.GetByID(ctx, m.ProductID)
			if err != nil {
				return nil, err
			}
			products[m.ProductID] = product
		}
		out = append(out, *toMovementResponse(m, product))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement, p *entity.Product) *dto.StockMovementResponse {
	resp := &dto.StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
	if p != nil {
		resp.ProductName = p.Name
		resp.ProductSKU = p.SKU
	}
	return resp
}
