package billing

import (
	"context"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Se usa para que el conteo del límite mensual y el insert sean atómicos.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceRenderer convierte un layout ya calculado en bytes PDF.
type InvoiceRenderer interface {
	Render(ctx context.Context, layout *InvoiceLayout) ([]byte, error)
}

// InvoiceExporter serializa el historial de facturas (hoja de cálculo).
type InvoiceExporter interface {
	ExportInvoices(ctx context.Context, invoices []*entity.Invoice) ([]byte, error)
}
