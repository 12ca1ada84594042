// Package pdf implementa la representación imprimible del snapshot de stock.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación │ N° productos          │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: EAN | Estilo | Marca | Tienda 1..N | Total            │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES por tienda y general                                 │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var _ inventory.StockReportGenerator = (*StockStatusPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// Anchos de columna en unidades de grilla; cada tienda ocupa storeWidth.
const (
	eanWidth   = 3
	styleWidth = 4
	brandWidth = 3
	storeWidth = 2
	totalWidth = 2
)

// StockStatusPDF implementa inventory.StockReportGenerator usando Maroto v2.
type StockStatusPDF struct {
	printer *message.Printer
}

// NewStockStatusPDF construye el generador. Los números se formatean con separador de miles en español.
func NewStockStatusPDF() *StockStatusPDF {
	return &StockStatusPDF{printer: message.NewPrinter(language.Spanish)}
}

// GenerateStockStatusPDF genera el PDF y devuelve sus bytes.
func (g *StockStatusPDF) GenerateStockStatusPDF(
	_ context.Context,
	stores []*entity.Store,
	items []dto.StockStatusDTO,
	generatedAt time.Time,
) ([]byte, error) {
	grid := eanWidth + styleWidth + brandWidth + storeWidth*len(stores) + totalWidth

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Estado de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(grid, len(items), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(stores))
	m.AddRows(g.itemRows(stores, items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(stores, items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *StockStatusPDF) headerRow(grid, products int, generatedAt time.Time) core.Row {
	left := grid - grid/3
	return row.New(16).Add(
		col.New(left).Add(
			text.New("ESTADO DE STOCK POR TIENDA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.UTC().Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(grid-left).Add(
			text.New(g.printer.Sprintf("%d productos", products), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
		),
	)
}

func tableHeaderRow(stores []*entity.Store) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{
		h("EAN", eanWidth, align.Left),
		h("Estilo", styleWidth, align.Left),
		h("Marca", brandWidth, align.Left),
	}
	for _, s := range stores {
		cols = append(cols, h(s.Name, storeWidth, align.Right))
	}
	cols = append(cols, h("Total", totalWidth, align.Right))
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *StockStatusPDF) itemRows(stores []*entity.Store, items []dto.StockStatusDTO) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(items))
	for i, it := range items {
		cols := []core.Col{
			cell(it.EAN, eanWidth, align.Left),
			cell(it.StyleName, styleWidth, align.Left),
			cell(it.Brand, brandWidth, align.Left),
		}
		for _, s := range stores {
			cols = append(cols, cell(g.number(it.Stores[strconv.Itoa(s.ID)]), storeWidth, align.Right))
		}
		cols = append(cols, cell(g.number(it.TotalQuantity), totalWidth, align.Right))

		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

func (g *StockStatusPDF) totalsRow(stores []*entity.Store, items []dto.StockStatusDTO) core.Row {
	bold := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{bold("TOTAL", eanWidth+styleWidth+brandWidth, align.Left)}
	grand := 0
	for _, s := range stores {
		key := strconv.Itoa(s.ID)
		sum := 0
		for _, it := range items {
			sum += it.Stores[key]
		}
		grand += sum
		cols = append(cols, bold(g.number(sum), storeWidth, align.Right))
	}
	cols = append(cols, bold(g.number(grand), totalWidth, align.Right))
	return row.New(8).Add(cols...)
}

// number formatea con separador de miles según el idioma del printer (1.234).
func (g *StockStatusPDF) number(n int) string {
	return g.printer.Sprintf("%d", n)
}
