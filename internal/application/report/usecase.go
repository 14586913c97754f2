package report

import (
	"context"
	"time"

	"github.com/dcamposl/gestock-api/internal/application/catalog"
	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/application/ledger"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
)

// StockReportPDFGenerator puerto para renderizar el reporte de existencias.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}

// UseCase reportes de existencias, stock bajo y movimientos.
type UseCase struct {
	productRepo repository.ProductRepository
	ledgerUC    *ledger.UseCase
	pdfGen      StockReportPDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(productRepo repository.ProductRepository, ledgerUC *ledger.UseCase, pdfGen StockReportPDFGenerator) *UseCase {
	return &UseCase{productRepo: productRepo, ledgerUC: ledgerUC, pdfGen: pdfGen}
}

// Stock devuelve el reporte de existencias completo (sin paginar).
func (uc *UseCase) Stock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(products), nil
}

// StockPage devuelve una página del reporte de existencias.
func (uc *UseCase) StockPage(ctx context.Context, pageNumber, pageSize int) (*dto.PagedResult[dto.ProductResponse], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	total, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListPage(ctx, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, err
	}
	page := dto.NewPagedResult(toResponses(products), total, pageNumber, pageSize)
	return &page, nil
}

// StockPDF renderiza el reporte de existencias completo en PDF.
func (uc *UseCase) StockPDF(ctx context.Context) ([]byte, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateStockReportPDF(ctx, products, time.Now().UTC())
}

// LowStock devuelve los productos en o por debajo de su mínimo.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(products), nil
}

// LowStockPage pagina en memoria el listado filtrado de stock bajo.
func (uc *UseCase) LowStockPage(ctx context.Context, pageNumber, pageSize int) (*dto.PagedResult[dto.ProductResponse], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	all, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	page := dto.NewPagedResult(dto.PageSlice(all, pageNumber, pageSize), len(all), pageNumber, pageSize)
	return &page, nil
}

// Movements devuelve el historial de movimientos. startDate y endDate son
// fechas calendario locales ("2006-01-02"); cuando ambas vienen, el rango se
// ensancha a día completo UTC antes de consultar. Si falta alguna, devuelve
// todos los movimientos.
func (uc *UseCase) Movements(ctx context.Context, startDate, endDate string) ([]dto.StockMovementResponse, error) {
	if startDate != "" && endDate != "" {
		from, to, err := WidenDateRange(startDate, endDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return uc.ledgerUC.ListByDateRange(ctx, from, to)
	}
	return uc.ledgerUC.ListAll(ctx)
}

// WidenDateRange convierte dos fechas calendario en zona loc al rango UTC
// [inicio del primer día, un instante antes del inicio del día siguiente al
// último]. Así el filtro captura todos los movimientos de los días
// seleccionados sin importar la zona horaria del caller.
func WidenDateRange(startDate, endDate string, loc *time.Location) (from, to time.Time, err error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from = start.UTC()
	to = end.AddDate(0, 0, 1).UTC().Add(-time.Nanosecond)
	return from, to, nil
}

func toResponses(products []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *catalog.ToProductResponse(p))
	}
	return items
}
