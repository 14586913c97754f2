package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcamposl/gestock-api/internal/application/report"
)

// ReportHandler maneja los reportes de inventario (protegido, Moderator+).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock devuelve el reporte de existencias. Con ?format=pdf responde el
// documento PDF; en JSON admite paginación opcional.
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	if c.Query("format") == "pdf" {
		pdf, err := h.uc.StockPDF(c.UserContext())
		if err != nil {
			return handleError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-existencias.pdf"`)
		return c.Send(pdf)
	}
	if pageNumber, pageSize, paged := pageParams(c); paged {
		out, err := h.uc.StockPage(c.UserContext(), pageNumber, pageSize)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.Stock(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// LowStock devuelve los productos en o bajo su nivel mínimo.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	if pageNumber, pageSize, paged := pageParams(c); paged {
		out, err := h.uc.LowStockPage(c.UserContext(), pageNumber, pageSize)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Movements devuelve el reporte de movimientos, filtrado por rango de fechas
// cuando startDate y endDate vienen en la query.
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.UserContext(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
