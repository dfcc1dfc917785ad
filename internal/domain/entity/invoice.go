package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura guardada.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusOverdue = "OVERDUE"
)

// InvoicePaymentTermDays días entre emisión y vencimiento.
const InvoicePaymentTermDays = 30

// ValidInvoiceStatus informa si s es un estado conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice representa una factura persistida en el servidor (solo lectura para el cliente tras crearla).
type Invoice struct {
	ID             string
	UserID         string
	ClientName     string
	Amount         decimal.Decimal
	DateIssued     time.Time // solo fecha
	DueDate        time.Time // solo fecha
	Status         string
	IdempotencyKey string // clave de envío del borrador; vacía si el cliente no la mandó
	RequestHash    string // huella del cuerpo enviado con IdempotencyKey
	CreatedAt      time.Time
}
