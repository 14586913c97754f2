package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/application/ledger"
	"github.com/dcamposl/gestock-api/internal/application/report"
	"github.com/dcamposl/gestock-api/pkg/validator"
)

// MovementHandler maneja el libro de movimientos de stock (protegido).
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

type movementOp func(ctx context.Context, in dto.StockMovementRequest, createdBy string) (*dto.StockMovementResponse, error)

// Add registra una entrada de stock.
func (h *MovementHandler) Add(c *fiber.Ctx) error {
	return h.apply(c, h.uc.AddStock)
}

// Remove registra una salida de stock. Falla con 409 si la existencia
// disponible no alcanza.
func (h *MovementHandler) Remove(c *fiber.Ctx) error {
	return h.apply(c, h.uc.RemoveStock)
}

// Adjust fija la existencia en un valor absoluto; el delta registrado es la
// diferencia contra el valor previo.
func (h *MovementHandler) Adjust(c *fiber.Ctx) error {
	return h.apply(c, h.uc.AdjustStock)
}

func (h *MovementHandler) apply(c *fiber.Ctx, op movementOp) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msg := validator.ValidateStruct(in); msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	out, err := op(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve los movimientos, paginados si el cliente lo pide.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	if pageNumber, pageSize, paged := pageParams(c); paged {
		out, err := h.uc.ListPage(c.UserContext(), pageNumber, pageSize)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct devuelve el historial de movimientos de un producto.
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListByDateRange devuelve los movimientos entre dos fechas calendario
// (YYYY-MM-DD, ambas inclusivas, ampliadas a días completos).
func (h *MovementHandler) ListByDateRange(c *fiber.Ctx) error {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		return badRequest(c, "VALIDATION", "startDate y endDate son requeridos")
	}
	from, to, err := report.WidenDateRange(startDate, endDate, time.Local)
	if err != nil {
		return badRequest(c, "VALIDATION", "formato de fecha inválido, se espera YYYY-MM-DD")
	}
	out, err := h.uc.ListByDateRange(c.UserContext(), from, to)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
