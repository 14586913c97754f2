package catalog_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/gestock-api/internal/application/catalog"
	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
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
		if barcode != "" && p.Barcode == barcode {
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
		if barcode != "" && p.Barcode == barcode && p.ID != excludeID {
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

func (r *fakeProductRepo) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	all, _ := r.List(ctx)
	term = strings.ToLower(term)
	var out []*entity.Product
	for _, p := range all {
		haystack := strings.ToLower(p.Name + " " + p.SKU + " " + p.Barcode + " " + p.Description)
		if strings.Contains(haystack, term) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	m := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		cp := *c
		m[c.ID] = &cp
	}
	return &fakeCategoryRepo{categories: m}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testCategoryID = "00000000-0000-0000-0000-0000000000cc"

func newTestCatalog() (*catalog.ProductUseCase, *catalog.CategoryUseCase, *fakeProductRepo, *fakeCategoryRepo) {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo(&entity.Category{ID: testCategoryID, Name: "Bebidas"})
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return catalog.NewProductUseCase(products, categories, log),
		catalog.NewCategoryUseCase(categories, products, log),
		products, categories
}

func validProduct(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:              "Agua mineral 1L",
		SKU:               sku,
		Price:             decimal.NewFromFloat(1.50),
		Cost:              decimal.NewFromFloat(0.90),
		InitialQuantity:   20,
		MinimumStockLevel: 5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ConExistenciaInicial(t *testing.T) {
	uc, _, _, _ := newTestCatalog()

	out, err := uc.Create(context.Background(), validProduct("AGUA-1L"))
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "AGUA-1L", out.SKU)
	assert.Equal(t, int64(20), out.Quantity, "la existencia inicial viene del request de creación")
	assert.False(t, out.IsLowStock)
}

func TestProductCreate_SKUDuplicadoFalla(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	_, err := uc.Create(ctx, validProduct("AGUA-1L"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, validProduct("AGUA-1L"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_SKUDistingueMayusculas(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	_, err := uc.Create(ctx, validProduct("AGUA-1L"))
	require.NoError(t, err)

	// "agua-1l" y "AGUA-1L" son SKUs distintos.
	_, err = uc.Create(ctx, validProduct("agua-1l"))
	assert.NoError(t, err)
}

func TestProductCreate_BarcodeDuplicadoFalla(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	first := validProduct("AGUA-1L")
	first.Barcode = "7701234567890"
	_, err := uc.Create(ctx, first)
	require.NoError(t, err)

	second := validProduct("AGUA-2L")
	second.Barcode = "7701234567890"
	_, err = uc.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_BarcodeVacioNoColisiona(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	_, err := uc.Create(ctx, validProduct("SKU-1"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, validProduct("SKU-2"))
	assert.NoError(t, err, "varios productos sin barcode deben convivir")
}

func TestProductCreate_CategoriaInexistenteFalla(t *testing.T) {
	uc, _, _, _ := newTestCatalog()

	in := validProduct("AGUA-1L")
	in.CategoryID = "no-existe"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoTocaLaExistencia(t *testing.T) {
	uc, _, products, _ := newTestCatalog()
	ctx := context.Background()

	created, err := uc.Create(ctx, validProduct("AGUA-1L"))
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:              "Agua mineral con gas 1L",
		SKU:               "AGUA-1L",
		Price:             decimal.NewFromFloat(1.80),
		Cost:              decimal.NewFromFloat(1.00),
		MinimumStockLevel: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "Agua mineral con gas 1L", out.Name)
	assert.Equal(t, int64(20), out.Quantity, "la existencia solo cambia vía movimientos de stock")
	p, _ := products.GetByID(ctx, created.ID)
	assert.Equal(t, int64(20), p.Quantity)
}

func TestProductUpdate_SKUDeOtroProductoFalla(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	_, err := uc.Create(ctx, validProduct("SKU-A"))
	require.NoError(t, err)
	b, err := uc.Create(ctx, validProduct("SKU-B"))
	require.NoError(t, err)

	in := dto.UpdateProductRequest{Name: "x", SKU: "SKU-A"}
	_, err = uc.Update(ctx, b.ID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Conservar el propio SKU sí es válido.
	in.SKU = "SKU-B"
	_, err = uc.Update(ctx, b.ID, in)
	assert.NoError(t, err)
}

func TestProductGetByX_NoEncontrado(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetBySKU(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByBarcode(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.Delete(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListLowStock_UmbralInclusivo(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	bajo := validProduct("BAJO")
	bajo.InitialQuantity = 5
	bajo.MinimumStockLevel = 5 // igual al mínimo: cuenta como bajo
	_, err := uc.Create(ctx, bajo)
	require.NoError(t, err)

	ok := validProduct("OK")
	ok.InitialQuantity = 6
	ok.MinimumStockLevel = 5
	_, err = uc.Create(ctx, ok)
	require.NoError(t, err)

	out, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BAJO", out[0].SKU)
	assert.True(t, out[0].IsLowStock)
}

func TestProductListPage_MetadatosDePaginacion(t *testing.T) {
	uc, _, _, _ := newTestCatalog()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		in := validProduct("SKU-" + string(rune('A'+i)))
		in.Name = "Producto " + string(rune('A'+i))
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	page, err := uc.ListPage(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5, "la última página lleva el resto")
	assert.True(t, page.HasPreviousPage)
	assert.False(t, page.HasNextPage)

	_, err = uc.ListPage(ctx, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
