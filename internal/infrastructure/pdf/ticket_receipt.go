// Package pdf implementa la generación del comprobante imprimible de un
// ticket de consumo (formato tirilla 80mm).
//
// Layout de la tirilla:
//
//	┌──────────────────────────────┐
//	│  TICKET DE CONSUMO           │
//	│  N° ticket + Fecha           │
//	│  ──────────────────────────  │
//	│  Producto + Código + Precio  │
//	│  ──────────────────────────  │
//	│  CÓDIGO DE BARRAS / QR       │
//	│  Impresión N°                │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Dimensiones de la tirilla en mm (ancho fijo de impresora térmica).
const (
	receiptWidth  = 80
	receiptHeight = 160
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TicketReceiptGenerator implementa ticket.ReceiptPDFGenerator usando Maroto v2.
type TicketReceiptGenerator struct{}

// NewTicketReceiptGenerator construye el generador.
func NewTicketReceiptGenerator() *TicketReceiptGenerator { return &TicketReceiptGenerator{} }

// GenerateTicketReceipt genera el PDF de la tirilla y devuelve sus bytes.
func (g *TicketReceiptGenerator) GenerateTicketReceipt(
	_ context.Context,
	ticket *entity.Ticket,
	product *entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(receiptWidth, receiptHeight).
		WithLeftMargin(5).WithRightMargin(5).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Ticket de consumo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(ticket)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRows(product)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(codeRow(ticket, product))
	m.AddRows(footerRow(ticket))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar tirilla: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título + número de ticket + fecha de emisión.
func headerRows(ticket *entity.Ticket) []core.Row {
	fecha := ticket.CreatedAt.Format("02/01/2006 15:04")
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("TICKET DE CONSUMO", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("N° "+ticket.ID, props.Text{
				Size: 6.5, Align: align.Center, Top: 1, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 7, Align: align.Center, Top: 5, Color: colorGray,
			}),
		)),
	}
}

// productRows: nombre, código interno y precio del producto consumido.
func productRows(product *entity.Product) []core.Row {
	return []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 2,
			}),
			text.New("Código: "+product.Code, props.Text{
				Size: 7, Align: align.Center, Top: 8, Color: colorGray,
			}),
		)),
		row.New(8).Add(
			col.New(6).Add(text.New("Cantidad: 1", props.Text{
				Size: 8, Align: align.Left, Top: 2, Left: 2,
			})),
			col.New(6).Add(text.New("$"+formatMoney(product.Price.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Right: 2,
			})),
		),
	}
}

// codeRow: código de barras del producto si existe, si no QR con el id del ticket.
func codeRow(ticket *entity.Ticket, product *entity.Product) core.Row {
	if product.Barcode != "" {
		return row.New(22).Add(col.New(12).Add(
			code.NewBar(product.Barcode, props.Barcode{
				Percent: 80,
				Center:  true,
				Proportion: props.Proportion{
					Width:  16,
					Height: 5,
				},
			}),
		))
	}
	return row.New(30).Add(col.New(12).Add(
		code.NewQr(ticket.ID, props.Rect{
			Percent: 70,
			Center:  true,
		}),
	))
}

// footerRow: número de impresión (0 en la emisión original, N en reimpresiones).
func footerRow(ticket *entity.Ticket) core.Row {
	leyenda := "Original"
	if ticket.Printed > 0 {
		leyenda = fmt.Sprintf("Reimpresión N° %d", ticket.Printed)
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(leyenda, props.Text{
			Size: 7, Align: align.Center, Top: 3, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
