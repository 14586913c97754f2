package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcamposl/gestock-api/internal/application/catalog"
	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/pkg/validator"
)

// Valores por defecto y tope de la paginación.
const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	maxPageSize       = 100
)

// pageParams lee pageNumber/pageSize de la query. paged es false cuando el
// cliente no envió ninguno de los dos: en ese caso se responde la lista
// completa sin envolver.
func pageParams(c *fiber.Ctx) (pageNumber, pageSize int, paged bool) {
	if c.Query("pageNumber") == "" && c.Query("pageSize") == "" {
		return 0, 0, false
	}
	pageNumber = c.QueryInt("pageNumber", defaultPageNumber)
	pageSize = c.QueryInt("pageSize", defaultPageSize)
	if pageNumber < 1 {
		pageNumber = defaultPageNumber
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageNumber, pageSize, true
}

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un producto.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msg := validator.ValidateStruct(in); msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un producto por su id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetBySKU devuelve un producto por su SKU (sensible a mayúsculas).
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	out, err := h.uc.GetBySKU(c.UserContext(), c.Params("sku"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByBarcode devuelve un producto por su código de barras.
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.UserContext(), c.Params("barcode"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List devuelve los productos. Con pageNumber/pageSize responde una página;
// sin ellos responde la lista completa.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if pageNumber, pageSize, paged := pageParams(c); paged {
		out, err := h.uc.ListPage(c.UserContext(), pageNumber, pageSize)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory devuelve los productos de una categoría.
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ListByCategory(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock devuelve los productos en o bajo su nivel mínimo.
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Search busca por nombre, SKU, código de barras o descripción.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return badRequest(c, "VALIDATION", "q es requerido")
	}
	out, err := h.uc.Search(c.UserContext(), term)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza los datos de catálogo de un producto. La existencia no se
// modifica por esta vía: solo a través de los movimientos de stock.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msg := validator.ValidateStruct(in); msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un producto y, en cascada, su historial de movimientos.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
