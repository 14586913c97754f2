package ledger_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/application/ledger"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		cp := *p
		m[p.ID] = &cp
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) clone() *fakeProductRepo {
	cp := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		c := *p
		cp[id] = &c
	}
	return &fakeProductRepo{products: cp}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode && barcode != "" {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) SKUExists(_ context.Context, sku, excludeID string) (bool, error) {
	for _, p := range r.products {
		if p.SKU == sku && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) BarcodeExists(_ context.Context, barcode, excludeID string) (bool, error) {
	for _, p := range r.products {
		if p.Barcode == barcode && barcode != "" && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.List(ctx)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int, error) { return len(r.products), nil }

func (r *fakeProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	all, _ := r.List(ctx)
	var out []*entity.Product
	for _, p := range all {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	out, _ := r.ListByCategory(ctx, categoryID)
	return len(out), nil
}

func (r *fakeProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	all, _ := r.List(ctx)
	var out []*entity.Product
	for _, p := range all {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, _ string) ([]*entity.Product, error) {
	return r.List(ctx)
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) clone() *fakeMovementRepo {
	cp := make([]*entity.StockMovement, len(r.movements))
	for i, m := range r.movements {
		c := *m
		cp[i] = &c
	}
	return &fakeMovementRepo{movements: cp}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListAll(_ context.Context) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, len(r.movements))
	for i := range r.movements {
		cp := *r.movements[len(r.movements)-1-i] // más reciente primero
		out[i] = &cp
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	all, _ := r.ListAll(ctx)
	var out []*entity.StockMovement
	for _, m := range all {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error) {
	all, _ := r.ListAll(ctx)
	var out []*entity.StockMovement
	for _, m := range all {
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	all, _ := r.ListAll(ctx)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeMovementRepo) Count(_ context.Context) (int, error) { return len(r.movements), nil }

// fakeTxRunner imita la transacción: si fn falla, restaura el estado previo,
// como haría un ROLLBACK.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	snapProducts := tx.products.clone()
	snapMovements := tx.movements.clone()
	if err := fn(tx.products, tx.movements); err != nil {
		tx.products.products = snapProducts.products
		tx.movements.movements = snapMovements.movements
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testProductID = "00000000-0000-0000-0000-0000000000aa"

func newTestLedger(initialQuantity, minimum int64) (*ledger.UseCase, *fakeProductRepo, *fakeMovementRepo) {
	products := newFakeProductRepo(&entity.Product{
		ID:                testProductID,
		Name:              "Café molido 500g",
		SKU:               "CAFE-500",
		Quantity:          initialQuantity,
		MinimumStockLevel: minimum,
	})
	movements := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: products, movements: movements}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return ledger.NewUseCase(tx, products, movements, log), products, movements
}

func quantityOf(t *testing.T, repo *fakeProductRepo, id string) int64 {
	t.Helper()
	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p, "el producto debe existir")
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_IncrementaYRegistraAsiento(t *testing.T) {
	uc, products, movements := newTestLedger(10, 2)
	ctx := context.Background()

	out, err := uc.AddStock(ctx, dto.StockMovementRequest{
		ProductID: testProductID,
		Quantity:  5,
		Reason:    "compra a proveedor",
	}, "almacenista")
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeAdd, out.Type)
	assert.Equal(t, int64(5), out.Quantity, "el delta del asiento debe ser +5")
	assert.Equal(t, "CAFE-500", out.ProductSKU)
	assert.Equal(t, "almacenista", out.CreatedBy)
	assert.Equal(t, int64(15), quantityOf(t, products, testProductID))
	assert.Len(t, movements.movements, 1)
}

func TestAddStock_CantidadNoPositivaEsInvalida(t *testing.T) {
	uc, products, movements := newTestLedger(10, 2)
	ctx := context.Background()

	for _, q := range []int64{0, -3} {
		_, err := uc.AddStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: q}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, int64(10), quantityOf(t, products, testProductID))
	assert.Empty(t, movements.movements, "no debe registrarse ningún asiento")
}

func TestRemoveStock_DescuentaConDeltaNegativo(t *testing.T) {
	uc, products, _ := newTestLedger(10, 2)
	ctx := context.Background()

	out, err := uc.RemoveStock(ctx, dto.StockMovementRequest{
		ProductID: testProductID,
		Quantity:  4,
		Reason:    "venta mostrador",
	}, "cajero1")
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeRemove, out.Type)
	assert.Equal(t, int64(-4), out.Quantity, "el delta del asiento debe ser -4")
	assert.Equal(t, int64(6), quantityOf(t, products, testProductID))
}

func TestRemoveStock_InsuficienteNoPersisteNada(t *testing.T) {
	uc, products, movements := newTestLedger(3, 2)
	ctx := context.Background()

	_, err := uc.RemoveStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 7}, "cajero1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(3), quantityOf(t, products, testProductID),
		"la existencia no debe cambiar tras un retiro rechazado")
	assert.Empty(t, movements.movements, "el asiento rechazado no debe quedar en el libro")
}

func TestRemoveStock_ExactamenteLaExistenciaLlegaACero(t *testing.T) {
	uc, products, _ := newTestLedger(3, 2)
	ctx := context.Background()

	out, err := uc.RemoveStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 3}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), out.Quantity)
	assert.Equal(t, int64(0), quantityOf(t, products, testProductID))
}

func TestAddLuegoRemove_RestauraExistenciaConDosAsientos(t *testing.T) {
	uc, products, movements := newTestLedger(10, 2)
	ctx := context.Background()

	_, err := uc.AddStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 6}, "")
	require.NoError(t, err)
	_, err = uc.RemoveStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 6}, "")
	require.NoError(t, err)

	assert.Equal(t, int64(10), quantityOf(t, products, testProductID),
		"sumar y retirar la misma cantidad debe dejar la existencia original")
	require.Len(t, movements.movements, 2, "deben quedar los dos asientos, no cero")
	assert.Equal(t, int64(6), movements.movements[0].Quantity)
	assert.Equal(t, int64(-6), movements.movements[1].Quantity)
}

func TestAdjustStock_FijaValorAbsolutoConDeltaDiferencia(t *testing.T) {
	uc, products, _ := newTestLedger(10, 2)
	ctx := context.Background()

	casos := []struct {
		objetivo int64
		delta    int64
	}{
		{objetivo: 25, delta: 15}, // sube
		{objetivo: 25, delta: 0},  // sin cambio
		{objetivo: 4, delta: -21}, // baja
		{objetivo: 0, delta: -4},  // a cero
	}
	for _, c := range casos {
		out, err := uc.AdjustStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: c.objetivo}, "auditor")
		require.NoError(t, err)
		assert.Equal(t, entity.MovementTypeAdjustment, out.Type)
		assert.Equal(t, c.delta, out.Quantity, "delta = objetivo - existencia previa")
		assert.Equal(t, c.objetivo, quantityOf(t, products, testProductID))
	}
}

func TestAdjustStock_NegativoEsInvalido(t *testing.T) {
	uc, _, _ := newTestLedger(10, 2)
	_, err := uc.AdjustStock(context.Background(), dto.StockMovementRequest{ProductID: testProductID, Quantity: -1}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovimientos_ProductoInexistente(t *testing.T) {
	uc, _, movements := newTestLedger(10, 2)
	ctx := context.Background()

	_, err := uc.AddStock(ctx, dto.StockMovementRequest{ProductID: "no-existe", Quantity: 1}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movements.movements)
}

func TestRemoveStock_CruzaElUmbralDeStockBajo(t *testing.T) {
	// Existencia 6 con mínimo 5: un retiro de 2 deja 4 (<= mínimo).
	uc, products, _ := newTestLedger(6, 5)
	ctx := context.Background()

	_, err := uc.RemoveStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 2}, "")
	require.NoError(t, err)

	low, err := products.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1, "el producto debe aparecer en stock bajo")
	assert.Equal(t, testProductID, low[0].ID)
}

func TestListByProduct_EnriqueceConDatosDelProducto(t *testing.T) {
	uc, _, _ := newTestLedger(10, 2)
	ctx := context.Background()

	_, err := uc.AddStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 2}, "a")
	require.NoError(t, err)
	_, err = uc.RemoveStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 1}, "b")
	require.NoError(t, err)

	out, err := uc.ListByProduct(ctx, testProductID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Más reciente primero.
	assert.Equal(t, entity.MovementTypeRemove, out[0].Type)
	assert.Equal(t, entity.MovementTypeAdd, out[1].Type)
	for _, m := range out {
		assert.Equal(t, "Café molido 500g", m.ProductName)
		assert.Equal(t, "CAFE-500", m.ProductSKU)
	}
}

func TestListPage_PaginaElLibro(t *testing.T) {
	uc, _, _ := newTestLedger(100, 2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.AddStock(ctx, dto.StockMovementRequest{ProductID: testProductID, Quantity: 1}, "")
		require.NoError(t, err)
	}

	page, err := uc.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasPreviousPage)
	assert.True(t, page.HasNextPage)
}
