package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, sku, barcode, price, cost, quantity, minimum_stock_level, category_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SKU, nullIfEmpty(p.Barcode),
		p.Price, p.Cost, p.Quantity, p.MinimumStockLevel, nullIfEmpty(p.CategoryID),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene un producto bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un producto por SKU exacto (sensible a mayúsculas).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getBy(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetByBarcode obtiene un producto por código de barras exacto.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getBy(ctx, `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// SKUExists indica si otro producto (distinto de excludeID) ya usa el SKU.
func (r *ProductRepo) SKUExists(ctx context.Context, sku, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1 AND ($2 = '' OR id <> $2))`,
		sku, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sku exists: %w", err)
	}
	return exists, nil
}

// BarcodeExists indica si otro producto (distinto de excludeID) ya usa el barcode.
func (r *ProductRepo) BarcodeExists(ctx context.Context, barcode, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE barcode = $1 AND ($2 = '' OR id <> $2))`,
		barcode, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("barcode exists: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos del producto, incluida la existencia vigente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, sku = $4, barcode = $5, price = $6, cost = $7,
		    quantity = $8, minimum_stock_level = $9, category_id = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SKU, nullIfEmpty(p.Barcode), p.Price, p.Cost,
		p.Quantity, p.MinimumStockLevel, nullIfEmpty(p.CategoryID), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity fija la existencia del producto (usado por el ledger dentro de una tx).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto; sus movimientos caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.listBy(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

// ListPage devuelve una porción del listado ordenado por nombre.
func (r *ProductRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.listBy(ctx, `SELECT `+productColumns+` FROM products ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
}

// Count devuelve el total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// ListByCategory devuelve los productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return r.listBy(ctx, `SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY name`, categoryID)
}

// CountByCategory devuelve cuántos productos referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// ListLowStock devuelve los productos con quantity <= minimum_stock_level.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.listBy(ctx, `SELECT `+productColumns+` FROM products WHERE quantity <= minimum_stock_level ORDER BY name`)
}

// Search busca por subcadena insensible a mayúsculas en nombre, SKU, barcode y descripción.
func (r *ProductRepo) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	pattern := "%" + term + "%"
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE $1 OR sku ILIKE $1 OR coalesce(barcode, '') ILIKE $1 OR description ILIKE $1
		ORDER BY name`
	return r.listBy(ctx, query, pattern)
}

func (r *ProductRepo) getBy(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) listBy(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode, categoryID *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &barcode, &p.Price, &p.Cost,
		&p.Quantity, &p.MinimumStockLevel, &categoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

// nullIfEmpty convierte "" en NULL para columnas únicas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
