package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

// exportMaxRows tope de filas del historial exportado.
const exportMaxRows = 10000

// ExportUseCase exporta el historial de facturas del usuario.
type ExportUseCase struct {
	invoiceRepo repository.InvoiceRepository
	exporter    InvoiceExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(invoiceRepo repository.InvoiceRepository, exporter InvoiceExporter) *ExportUseCase {
	return &ExportUseCase{invoiceRepo: invoiceRepo, exporter: exporter}
}

// Export devuelve el archivo y su nombre sugerido.
func (uc *ExportUseCase) Export(ctx context.Context, userID string) ([]byte, string, error) {
	list, err := uc.invoiceRepo.ListByUser(ctx, userID, exportMaxRows, 0)
	if err != nil {
		return nil, "", fmt.Errorf("export: listar facturas: %w", err)
	}
	data, err := uc.exporter.ExportInvoices(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}
	return data, "invoices.xlsx", nil
}
