package billing

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/pkg/money"
)

// Geometría A4 en milímetros y medidas verticales del documento.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	PageMargin = 20.0

	bannerHeight      = 40.0
	bannerGap         = 10.0
	metaLineHeight    = 6.0
	sectionGap        = 12.0
	billToHeadHeight  = 8.0
	billToLineHeight  = 6.0
	billToGap         = 14.0
	tableHeaderHeight = 10.0
	tableRowHeight    = 10.0
	tableGap          = 10.0
	totalHeight       = 12.0
	totalGap          = 18.0
	notesHeadHeight   = 7.0
	notesLineHeight   = 5.0
	notesGap          = 15.0
	footerLineHeight  = 6.0

	// NotesLineChars presupuesto de caracteres por línea de notas (Helvetica 10 en 170 mm).
	NotesLineChars = 90

	dateLayout = "02/01/2006"
)

// Issuer identidad del emisor impresa en el encabezado.
type Issuer struct {
	Name     string
	Location string
	Email    string
}

// DefaultIssuer emisor por defecto del producto.
func DefaultIssuer() Issuer {
	return Issuer{Name: "MtaaBiz AI", Location: "Nairobi, Kenya", Email: "hello@mtaabiz.co.ke"}
}

// BlockKind identifica cada bloque vertical del documento.
type BlockKind string

const (
	BlockBanner      BlockKind = "banner"
	BlockMeta        BlockKind = "meta"
	BlockBillTo      BlockKind = "bill_to"
	BlockTableHeader BlockKind = "table_header"
	BlockTableRows   BlockKind = "table_rows"
	BlockTotal       BlockKind = "total"
	BlockNotes       BlockKind = "notes"
	BlockFooter      BlockKind = "footer"
)

// Block posición (Top) y alto de un bloque en mm desde el borde superior.
type Block struct {
	Kind   BlockKind
	Top    float64
	Height float64
}

// Bottom borde inferior del bloque.
func (b Block) Bottom() float64 { return b.Top + b.Height }

// TableRow fila ya formateada de la tabla de líneas.
type TableRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// InvoiceLayout documento calculado: textos formateados y posiciones. No depende del renderer.
type InvoiceLayout struct {
	Title       string
	IssuerLines []string
	Meta        []string
	BillToTitle string
	BillTo      []string
	Columns     [4]string
	Rows        []TableRow
	TotalLabel  string
	TotalValue  string
	NotesTitle  string
	Notes       []string
	Footer      []string
	Credit      string
	Blocks      []Block

	InvoiceNumber string
	IssuedAt      time.Time
	Author        string
	Filename      string
}

// Block devuelve el bloque de tipo kind, si existe.
func (l *InvoiceLayout) Block(kind BlockKind) (Block, bool) {
	for _, b := range l.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}

// ComposeLayout calcula el documento de la factura con un cursor vertical.
// Es puro: el mismo borrador produce siempre el mismo layout.
func ComposeLayout(draft *entity.InvoiceDraft, issuer Issuer) *InvoiceLayout {
	cur := money.KES
	l := &InvoiceLayout{
		Title:       "INVOICE",
		IssuerLines: []string{issuer.Name, issuer.Location, issuer.Email},
		Meta: []string{
			"Invoice Number: " + draft.InvoiceNumber,
			"Date: " + draft.IssuedAt.Format(dateLayout),
			"Due Date: " + draft.DueDate().Format(dateLayout),
		},
		BillToTitle:   "BILL TO",
		Columns:       [4]string{"Description", "Qty", "Price", "Total"},
		TotalLabel:    "TOTAL DUE:",
		TotalValue:    cur.Format(draft.Total()),
		NotesTitle:    "NOTES / TERMS",
		Footer:        []string{"Payment Terms: Due within 30 days of issue", "Thank you for your business!"},
		Credit:        "Generated by " + issuer.Name + " • www.mtaabiz.co.ke",
		InvoiceNumber: draft.InvoiceNumber,
		IssuedAt:      draft.IssuedAt,
		Author:        issuer.Name,
		Filename:      draft.Filename(),
	}

	l.BillTo = append(l.BillTo, draft.ClientName)
	if s := strings.TrimSpace(draft.ClientEmail); s != "" {
		l.BillTo = append(l.BillTo, s)
	}
	if s := strings.TrimSpace(draft.ClientPhone); s != "" {
		l.BillTo = append(l.BillTo, s)
	}

	for _, it := range draft.BillableItems() {
		l.Rows = append(l.Rows, TableRow{
			Description: truncateRunes(it.Description, entity.DescriptionMaxRunes),
			Quantity:    strconv.Itoa(it.Quantity),
			UnitPrice:   cur.Format(it.UnitPrice),
			LineTotal:   cur.Format(it.LineTotal()),
		})
	}

	if strings.TrimSpace(draft.Notes) != "" {
		l.Notes = WrapText(draft.Notes, NotesLineChars)
	}

	// ── Cursor vertical ───────────────────────────────────────────────────────
	y := 0.0
	place := func(kind BlockKind, h, gap float64) {
		l.Blocks = append(l.Blocks, Block{Kind: kind, Top: y, Height: h})
		y += h + gap
	}
	place(BlockBanner, bannerHeight, bannerGap)
	place(BlockMeta, float64(len(l.Meta))*metaLineHeight, sectionGap)
	place(BlockBillTo, billToHeadHeight+float64(len(l.BillTo))*billToLineHeight, billToGap)
	place(BlockTableHeader, tableHeaderHeight, 0)
	if len(l.Rows) > 0 {
		place(BlockTableRows, float64(len(l.Rows))*tableRowHeight, 0)
	}
	y += tableGap
	place(BlockTotal, totalHeight, totalGap)
	if len(l.Notes) > 0 {
		place(BlockNotes, notesHeadHeight+float64(len(l.Notes))*notesLineHeight, notesGap)
	}
	place(BlockFooter, float64(len(l.Footer))*footerLineHeight, 0)
	return l
}

// WrapText parte el texto en líneas de a lo sumo width runas, respetando saltos de línea
// y cortando por palabras; una palabra más larga que width se corta en trozos.
func WrapText(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			if w == "" {
				continue
			}
			switch {
			case line == "":
				line = w
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
