// Package pdf renderiza el reporte de existencias en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌───────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de existencias + fecha de generación      │
//	│  ───────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Exist. | Mínimo | Costo | Estado  │
//	│  ───────────────────────────────────────────────────────  │
//	│  TOTALES: unidades totales / valor de inventario al costo  │
//	└───────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/dcamposl/gestock-api/internal/application/report"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ report.StockReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.StockReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(
	_ context.Context,
	products []*entity.Product,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(productRow(p))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de existencias", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 5, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New("SKU", header)),
		col.New(4).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Existencia", headerRight)),
		col.New(1).Add(text.New("Mínimo", headerRight)),
		col.New(2).Add(text.New("Costo", headerRight)),
		col.New(1).Add(text.New("Estado", header)),
	)
}

func productRow(p *entity.Product) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	status := "OK"
	statusProps := cell
	if p.IsLowStock() {
		status = "BAJO"
		statusProps = props.Text{Size: 8, Top: 1, Style: fontstyle.Bold, Color: colorAlert}
	}
	return row.New(5).Add(
		col.New(2).Add(text.New(p.SKU, cell)),
		col.New(4).Add(text.New(p.Name, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.Quantity), cellRight)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.MinimumStockLevel), cellRight)),
		col.New(2).Add(text.New(p.Cost.StringFixed(2), cellRight)),
		col.New(1).Add(text.New(status, statusProps)),
	)
}

func totalsRow(products []*entity.Product) core.Row {
	var units int64
	value := decimal.Zero
	for _, p := range products {
		units += p.Quantity
		value = value.Add(p.Cost.Mul(decimal.NewFromInt(p.Quantity)))
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}
	boldRight := props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Align: align.Right}
	return row.New(8).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Productos: %d", len(products)), bold)),
		col.New(3).Add(text.New(fmt.Sprintf("Unidades: %d", units), boldRight)),
		col.New(3).Add(text.New("Valor al costo: "+value.StringFixed(2), boldRight)),
	)
}
