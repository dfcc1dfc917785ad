// Package xlsx exporta el historial de facturas a una hoja de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

// SheetName nombre de la hoja exportada.
const SheetName = "Invoices"

// ContentType MIME de los archivos generados.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headings = []interface{}{"Client", "Amount (KES)", "Date Issued", "Due Date", "Status", "Created At"}

var _ billing.InvoiceExporter = (*InvoiceExporter)(nil)

// InvoiceExporter implementa billing.InvoiceExporter.
type InvoiceExporter struct{}

// NewInvoiceExporter construye el exportador.
func NewInvoiceExporter() *InvoiceExporter { return &InvoiceExporter{} }

// ExportInvoices una fila por factura, en el orden recibido, debajo de la cabecera.
func (e *InvoiceExporter) ExportInvoices(ctx context.Context, invoices []*entity.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headings); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	amountFmt, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	_ = f.SetCellStyle(SheetName, "A1", "F1", bold)
	_ = f.SetColWidth(SheetName, "A", "A", 32)
	_ = f.SetColWidth(SheetName, "B", "F", 16)

	for i, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			inv.ClientName,
			inv.Amount.InexactFloat64(),
			inv.DateIssued.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			inv.Status,
			inv.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if n := len(invoices); n > 0 {
		last, _ := excelize.CoordinatesToCellName(2, n+1)
		_ = f.SetCellStyle(SheetName, "B2", last, amountFmt)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
