package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas (solo día) en el contrato JSON.
const DateLayout = "2006-01-02"

// CreateInvoiceRequest body para POST /api/invoices/.
// Status vacío = PENDING.
type CreateInvoiceRequest struct {
	ClientName string          `json:"client_name" validate:"required,max=255"`
	Amount     decimal.Decimal `json:"amount"`
	DateIssued string          `json:"date_issued" validate:"required,datetime=2006-01-02"`
	DueDate    string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status     string          `json:"status,omitempty" validate:"omitempty,oneof=PENDING PAID OVERDUE"`
}

// InvoiceResponse factura guardada.
type InvoiceResponse struct {
	ID         FlexibleID      `json:"id"`
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	DateIssued string          `json:"date_issued"`
	DueDate    string          `json:"due_date"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ComposeInvoiceRequest borrador completo para POST /api/invoices/pdf/.
// InvoiceNumber e IssuedAt son opcionales: si faltan se generan como en un borrador nuevo.
type ComposeInvoiceRequest struct {
	InvoiceNumber string            `json:"invoice_number,omitempty" validate:"omitempty,max=40"`
	IssuedAt      string            `json:"issued_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClientName    string            `json:"client_name" validate:"required,max=255"`
	ClientEmail   string            `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone   string            `json:"client_phone,omitempty" validate:"omitempty,max=40"`
	Notes         string            `json:"notes,omitempty"`
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LineItemRequest línea del borrador.
type LineItemRequest struct {
	Description string          `json:"description" validate:"max=500"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
