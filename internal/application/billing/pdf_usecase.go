package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

// ComposeUseCase genera el PDF de un borrador de factura: calcula el layout y lo entrega al renderer.
type ComposeUseCase struct {
	renderer InvoiceRenderer
	issuer   Issuer
}

// NewComposeUseCase construye el caso de uso inyectando el renderer y la identidad del emisor.
func NewComposeUseCase(renderer InvoiceRenderer, issuer Issuer) *ComposeUseCase {
	return &ComposeUseCase{renderer: renderer, issuer: issuer}
}

// Compose devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna domain.ErrInvalidInput si falta el cliente o ninguna línea tiene descripción.
func (uc *ComposeUseCase) Compose(ctx context.Context, draft *entity.InvoiceDraft) (pdfBytes []byte, filename string, err error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, "", err
	}
	layout := ComposeLayout(draft, uc.issuer)
	pdfBytes, err = uc.renderer.Render(ctx, layout)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, layout.Filename, nil
}

// ValidateDraft condiciones mínimas para emitir: cliente y al menos una línea con descripción.
func ValidateDraft(draft *entity.InvoiceDraft) error {
	if draft == nil || strings.TrimSpace(draft.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", domain.ErrInvalidInput)
	}
	if !draft.HasBillableItems() {
		return fmt.Errorf("%w: add at least one item with a description", domain.ErrInvalidInput)
	}
	for _, it := range draft.Items {
		if it.Quantity < 0 || it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: quantity and price cannot be negative", domain.ErrInvalidInput)
		}
	}
	return nil
}

// DraftFromRequest arma el borrador desde el contrato JSON del endpoint de PDF.
func DraftFromRequest(in dto.ComposeInvoiceRequest, now time.Time) (*entity.InvoiceDraft, error) {
	draft := entity.NewInvoiceDraft(now)
	if in.IssuedAt != "" {
		t, err := time.Parse(dto.DateLayout, in.IssuedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: issued_at: %v", domain.ErrInvalidInput, err)
		}
		draft.IssuedAt = t
	}
	if in.InvoiceNumber != "" {
		draft.InvoiceNumber = in.InvoiceNumber
	}
	draft.ClientName = in.ClientName
	draft.ClientEmail = in.ClientEmail
	draft.ClientPhone = in.ClientPhone
	draft.Notes = in.Notes
	draft.Items = nil
	for _, it := range in.Items {
		draft.AddItem(it.Description, it.Quantity, it.UnitPrice)
	}
	return draft, nil
}

// SavedInvoiceRequest datos que se guardan remotamente al emitir un borrador.
func SavedInvoiceRequest(draft *entity.InvoiceDraft) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientName: draft.ClientName,
		Amount:     draft.Total(),
		DateIssued: draft.IssuedAt.Format(dto.DateLayout),
		DueDate:    draft.DueDate().Format(dto.DateLayout),
		Status:     entity.InvoiceStatusPending,
	}
}
