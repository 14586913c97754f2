package repository

import (
	"context"

	"github.com/dcamposl/gestock-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto hasta el fin de la
	// transacción. Solo tiene sentido dentro de un TxRunner.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	SKUExists(ctx context.Context, sku, excludeID string) (bool, error)
	BarcodeExists(ctx context.Context, barcode, excludeID string) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
	ListPage(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Search(ctx context.Context, term string) ([]*entity.Product, error)
}
