package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

// ProductUseCase CRUD de productos con unicidad de SKU y barcode.
// Quantity no se toca aquí salvo en la creación (existencia inicial): toda
// variación posterior pasa por el ledger.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, log: log}
}

// Create crea un producto con su existencia inicial. Falla con ErrDuplicate
// si el SKU ya existe (sensible a mayúsculas) o el barcode pertenece a otro
// producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	exists, err := uc.repo.SKUExists(ctx, in.SKU, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	if in.Barcode != "" {
		exists, err = uc.repo.BarcodeExists(ctx, in.Barcode, "")
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		SKU:               in.SKU,
		Barcode:           in.Barcode,
		Price:             in.Price,
		Cost:              in.Cost,
		Quantity:          in.InitialQuantity,
		MinimumStockLevel: in.MinimumStockLevel,
		CategoryID:        in.CategoryID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU exacto.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras exacto.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza los datos de un producto. SKU y barcode deben seguir
// siendo únicos frente a los demás productos. Quantity no se modifica:
// usar el ledger.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.SKUExists(ctx, in.SKU, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	if in.Barcode != "" {
		exists, err = uc.repo.BarcodeExists(ctx, in.Barcode, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Description = in.Description
	product.SKU = in.SKU
	product.Barcode = in.Barcode
	product.Price = in.Price
	product.Cost = in.Cost
	product.MinimumStockLevel = in.MinimumStockLevel
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto. Sus movimientos caen en cascada.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("sku", product.SKU).Msg("producto eliminado")
	return nil
}

// List devuelve todos los productos sin paginar.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListPage devuelve una página 1-indexada de productos.
func (uc *ProductUseCase) ListPage(ctx context.Context, pageNumber, pageSize int) (*dto.PagedResult[dto.ProductResponse], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.repo.ListPage(ctx, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, err
	}
	page := dto.NewPagedResult(toProductResponses(products), total, pageNumber, pageSize)
	return &page, nil
}

// ListByCategory devuelve los productos de una categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListLowStock devuelve los productos con existencia en o por debajo del mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Search busca por subcadena (insensible a mayúsculas) en nombre, SKU,
// barcode y descripción.
func (uc *ProductUseCase) Search(ctx context.Context, term string) ([]dto.ProductResponse, error) {
	products, err := uc.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// checkCategory valida que la categoría exista cuando viene informada.
func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		Price:             p.Price,
		Cost:              p.Cost,
		Quantity:          p.Quantity,
		MinimumStockLevel: p.MinimumStockLevel,
		CategoryID:        p.CategoryID,
		IsLowStock:        p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return items
}
