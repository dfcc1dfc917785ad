// Package pdf dibuja el layout de factura (billing.InvoiceLayout) con Maroto v2.
//
// Layout de la página A4 (posiciones calculadas en billing.ComposeLayout):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BANNER: INVOICE              │  Emisor (nombre/ciudad/mail) │
//	│  META: número, fecha, vencimiento                            │
//	│  BILL TO: cliente + contacto                                 │
//	│  TABLA: Description | Qty | Price | Total                    │
//	│  TOTAL DUE                                                   │
//	│  NOTES / TERMS (opcional)                                    │
//	│  FOOTER: condiciones de pago + agradecimiento                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Generated by ... (pie registrado en cada página)            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/mtaabiz/internal/application/billing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 45, Green: 90, Blue: 61}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 240, Green: 245, Blue: 241}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ billing.InvoiceRenderer = (*MarotoComposer)(nil)

// MarotoComposer implementa billing.InvoiceRenderer usando Maroto v2.
type MarotoComposer struct{}

// NewMarotoComposer construye el renderer.
func NewMarotoComposer() *MarotoComposer { return &MarotoComposer{} }

// Render dibuja los bloques en el orden y posición del layout y devuelve los bytes del PDF.
func (g *MarotoComposer) Render(ctx context.Context, l *billing.InvoiceLayout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(billing.PageMargin).WithRightMargin(billing.PageMargin).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Invoice "+l.InvoiceNumber, true).
		WithAuthor(l.Author, true).
		WithCreator(l.Author, true).
		WithCreationDate(l.IssuedAt).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(creditRow(l.Credit)); err != nil {
		return nil, fmt.Errorf("pdf: registrar pie: %w", err)
	}

	y := 0.0
	for _, b := range l.Blocks {
		if gap := b.Top - y; gap > 0 {
			m.AddRows(row.New(gap))
		}
		m.AddRows(blockRows(l, b)...)
		y = b.Bottom()
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// blockRows filas de un bloque; la suma de sus altos es b.Height.
func blockRows(l *billing.InvoiceLayout, b billing.Block) []core.Row {
	switch b.Kind {
	case billing.BlockBanner:
		return []core.Row{bannerRow(l, b.Height)}
	case billing.BlockMeta:
		return lineRows(l.Meta, b.Height, props.Text{Size: 10})
	case billing.BlockBillTo:
		return billToRows(l, b.Height)
	case billing.BlockTableHeader:
		return []core.Row{tableHeaderRow(l.Columns, b.Height)}
	case billing.BlockTableRows:
		return tableRows(l.Rows, b.Height)
	case billing.BlockTotal:
		return []core.Row{totalRow(l, b.Height)}
	case billing.BlockNotes:
		return notesRows(l, b.Height)
	case billing.BlockFooter:
		return lineRows(l.Footer, b.Height, props.Text{Size: 9, Align: align.Center, Color: colorGray})
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// bannerRow: título (izq) y datos del emisor (der) sobre fondo verde.
func bannerRow(l *billing.InvoiceLayout, h float64) core.Row {
	issuer := col.New(6)
	for i, s := range l.IssuerLines {
		issuer.Add(text.New(s, props.Text{
			Size: 9, Align: align.Right, Color: colorWhite, Top: 12 + float64(i)*5, Right: 4,
		}))
	}
	return row.New(h).Add(
		col.New(6).Add(text.New(l.Title, props.Text{
			Style: fontstyle.Bold, Size: 26, Color: colorWhite, Top: 12, Left: 4,
		})),
		issuer,
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func billToRows(l *billing.InvoiceLayout, h float64) []core.Row {
	head := h - float64(len(l.BillTo))*6
	rows := []core.Row{row.New(head).Add(col.New(12).Add(text.New(l.BillToTitle, props.Text{
		Style: fontstyle.Bold, Size: 11, Color: colorPrimary,
	})))}
	return append(rows, lineRows(l.BillTo, h-head, props.Text{Size: 10})...)
}

func tableHeaderRow(cols [4]string, h float64) core.Row {
	cell := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Color: colorWhite, Top: 3, Left: 2, Right: 2,
		}))
	}
	return row.New(h).Add(
		cell(cols[0], 6, align.Left),
		cell(cols[1], 1, align.Center),
		cell(cols[2], 2, align.Right),
		cell(cols[3], 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por línea facturable, con fondo alterno.
func tableRows(items []billing.TableRow, h float64) []core.Row {
	if len(items) == 0 {
		return nil
	}
	rh := h / float64(len(items))
	out := make([]core.Row, 0, len(items))
	for i, it := range items {
		p := props.Text{Size: 9, Top: 3, Left: 2, Right: 2}
		r := row.New(rh).Add(
			col.New(6).Add(text.New(it.Description, p)),
			col.New(1).Add(text.New(it.Quantity, withAlign(p, align.Center))),
			col.New(2).Add(text.New(it.UnitPrice, withAlign(p, align.Right))),
			col.New(3).Add(text.New(it.LineTotal, withAlign(p, align.Right))),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorLight})
		}
		out = append(out, r)
	}
	return out
}

func totalRow(l *billing.InvoiceLayout, h float64) core.Row {
	p := props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 3, Align: align.Right, Right: 2}
	return row.New(h).Add(
		col.New(6),
		col.New(3).Add(text.New(l.TotalLabel, p)),
		col.New(3).Add(text.New(l.TotalValue, p)),
	)
}

func notesRows(l *billing.InvoiceLayout, h float64) []core.Row {
	lineH := 5.0
	head := h - float64(len(l.Notes))*lineH
	rows := []core.Row{row.New(head).Add(col.New(12).Add(text.New(l.NotesTitle, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary,
	})))}
	return append(rows, lineRows(l.Notes, h-head, props.Text{Size: 9, Color: colorGray})...)
}

func creditRow(credit string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		line.New(props.Line{Color: colorGray, Thickness: 0.2}),
		text.New(credit, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// lineRows reparte h en partes iguales, una fila de texto por línea.
func lineRows(lines []string, h float64, p props.Text) []core.Row {
	if len(lines) == 0 {
		return nil
	}
	lh := h / float64(len(lines))
	out := make([]core.Row, 0, len(lines))
	for _, s := range lines {
		out = append(out, row.New(lh).Add(col.New(12).Add(text.New(s, p))))
	}
	return out
}

func withAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}
