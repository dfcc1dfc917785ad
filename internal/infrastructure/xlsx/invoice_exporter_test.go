package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

func TestInvoiceExporter_FilasEnOrden(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	invoices := []*entity.Invoice{
		{ClientName: "Acme", Amount: decimal.RequireFromString("1500.50"), DateIssued: day, DueDate: day.AddDate(0, 0, 30), Status: entity.InvoiceStatusPending, CreatedAt: day},
		{ClientName: "Duka Bora", Amount: decimal.NewFromInt(200), DateIssued: day, DueDate: day, Status: entity.InvoiceStatusPaid, CreatedAt: day},
	}
	data, err := NewInvoiceExporter().ExportInvoices(context.Background(), invoices)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Client", rows[0][0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "2024-03-05", rows[1][2])
	assert.Equal(t, "2024-04-04", rows[1][3])
	assert.Equal(t, "PENDING", rows[1][4])
	assert.Equal(t, "Duka Bora", rows[2][0])
	assert.Equal(t, "PAID", rows[2][4])
}

func TestInvoiceExporter_SinFacturas_SoloCabecera(t *testing.T) {
	data, err := NewInvoiceExporter().ExportInvoices(context.Background(), nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
