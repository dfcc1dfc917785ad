package billing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

func sampleDraft() *entity.InvoiceDraft {
	d := entity.NewInvoiceDraft(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))
	d.InvoiceNumber = "INV-654321"
	d.ClientName = "John Kamau"
	d.UpdateItem(d.Items[0].ID, "Website design", 1, decimal.NewFromInt(1500))
	d.AddItem("Logo", 2, decimal.NewFromInt(250))
	return d
}

func TestComposeLayout_TextosYFormatos(t *testing.T) {
	l := billing.ComposeLayout(sampleDraft(), billing.DefaultIssuer())

	assert.Equal(t, "INVOICE", l.Title)
	assert.Equal(t, []string{"MtaaBiz AI", "Nairobi, Kenya", "hello@mtaabiz.co.ke"}, l.IssuerLines)
	assert.Equal(t, []string{
		"Invoice Number: INV-654321",
		"Date: 05/03/2024",
		"Due Date: 04/04/2024",
	}, l.Meta)
	assert.Equal(t, []string{"John Kamau"}, l.BillTo)
	require.Len(t, l.Rows, 2)
	assert.Equal(t, billing.TableRow{Description: "Logo", Quantity: "2", UnitPrice: "KES 250.00", LineTotal: "KES 500.00"}, l.Rows[1])
	assert.Equal(t, "KES 2,000.00", l.TotalValue)
	assert.Empty(t, l.Notes)
	assert.Equal(t, "INV-654321-John-Kamau.pdf", l.Filename)
}

func TestComposeLayout_CursorVertical(t *testing.T) {
	l := billing.ComposeLayout(sampleDraft(), billing.DefaultIssuer())

	want := []billing.Block{
		{Kind: billing.BlockBanner, Top: 0, Height: 40},
		{Kind: billing.BlockMeta, Top: 50, Height: 18},
		{Kind: billing.BlockBillTo, Top: 80, Height: 14},
		{Kind: billing.BlockTableHeader, Top: 108, Height: 10},
		{Kind: billing.BlockTableRows, Top: 118, Height: 20},
		{Kind: billing.BlockTotal, Top: 148, Height: 12},
		{Kind: billing.BlockFooter, Top: 178, Height: 12},
	}
	assert.Equal(t, want, l.Blocks)
	_, ok := l.Block(billing.BlockNotes)
	assert.False(t, ok, "sin notas no hay bloque de notas")
}

func TestComposeLayout_ContactoYNotasOpcionales(t *testing.T) {
	d := sampleDraft()
	d.ClientEmail = "john@example.com"
	d.ClientPhone = "+254 700 000 000"
	d.Notes = "Pay via M-Pesa till 123456."
	l := billing.ComposeLayout(d, billing.DefaultIssuer())

	assert.Equal(t, []string{"John Kamau", "john@example.com", "+254 700 000 000"}, l.BillTo)
	assert.Equal(t, []string{"Pay via M-Pesa till 123456."}, l.Notes)

	billTo, _ := l.Block(billing.BlockBillTo)
	assert.Equal(t, 26.0, billTo.Height)
	notes, ok := l.Block(billing.BlockNotes)
	require.True(t, ok)
	total, _ := l.Block(billing.BlockTotal)
	assert.Equal(t, total.Bottom()+18, notes.Top)
	footer, _ := l.Block(billing.BlockFooter)
	assert.Equal(t, notes.Bottom()+15, footer.Top)
}

func TestComposeLayout_LineasSinDescripcionNoSeImprimenPeroSuman(t *testing.T) {
	d := sampleDraft()
	d.AddItem("", 1, decimal.NewFromInt(1000))
	l := billing.ComposeLayout(d, billing.DefaultIssuer())
	assert.Len(t, l.Rows, 2)
	assert.Equal(t, "KES 3,000.00", l.TotalValue)
}

func TestComposeLayout_DescripcionSoloEspaciosSeImprime(t *testing.T) {
	d := sampleDraft()
	d.AddItem("   ", 1, decimal.NewFromInt(1000))
	l := billing.ComposeLayout(d, billing.DefaultIssuer())
	assert.Len(t, l.Rows, 3)
}

func TestComposeLayout_DescripcionTruncadaA40(t *testing.T) {
	d := sampleDraft()
	d.AddItem(strings.Repeat("á", 55), 1, decimal.NewFromInt(1))
	l := billing.ComposeLayout(d, billing.DefaultIssuer())
	assert.Equal(t, strings.Repeat("á", 40), l.Rows[2].Description)
}

func TestComposeLayout_Deterministico(t *testing.T) {
	a := billing.ComposeLayout(sampleDraft(), billing.DefaultIssuer())
	b := billing.ComposeLayout(sampleDraft(), billing.DefaultIssuer())
	assert.Equal(t, a, b)
}

func TestWrapText_CortaPorPalabrasYRespetaSaltos(t *testing.T) {
	lines := billing.WrapText("one two three four\nfive", 9)
	assert.Equal(t, []string{"one two", "three", "four", "five"}, lines)

	lines = billing.WrapText("abcdefghijkl xy", 5)
	assert.Equal(t, []string{"abcde", "fghij", "kl xy"}, lines)

	for _, l := range billing.WrapText(strings.Repeat("word ", 60), billing.NotesLineChars) {
		assert.LessOrEqual(t, len([]rune(l)), billing.NotesLineChars)
	}
}
