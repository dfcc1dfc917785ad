package entity

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DescriptionMaxRunes ancho máximo de la descripción en la tabla del PDF.
const DescriptionMaxRunes = 40

var whitespaceRun = regexp.MustCompile(`\s+`)

// LineItem línea de un borrador de factura. Vive solo mientras exista el borrador.
type LineItem struct {
	ID          string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal cantidad × precio unitario.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Billable informa si la línea aparece en la tabla: descripción no vacía, sin recortar
// (una descripción de solo espacios se imprime).
func (li LineItem) Billable() bool {
	return li.Description != ""
}

// InvoiceDraft factura en edición, en memoria y sin persistir.
// El número se genera una sola vez al crear el borrador; ID identifica el borrador
// para los envíos y no se muestra.
type InvoiceDraft struct {
	ID            string
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	Notes         string
	Items         []LineItem
	InvoiceNumber string
	IssuedAt      time.Time

	nextID int
}

// NewInvoiceDraft crea un borrador con una línea vacía (cantidad 1, precio 0), igual que el formulario.
func NewInvoiceDraft(now time.Time) *InvoiceDraft {
	d := &InvoiceDraft{
		ID:            uuid.New().String(),
		InvoiceNumber: NewInvoiceNumber(now),
		IssuedAt:      now,
	}
	d.AddItem("", 1, decimal.Zero)
	return d
}

// NewInvoiceNumber "INV-" + últimos 6 dígitos de los milisegundos Unix.
func NewInvoiceNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "INV-" + ms
}

// AddItem agrega una línea y devuelve su ID.
func (d *InvoiceDraft) AddItem(description string, quantity int, unitPrice decimal.Decimal) string {
	d.nextID++
	id := strconv.Itoa(d.nextID)
	d.Items = append(d.Items, LineItem{
		ID:          id,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	return id
}

// RemoveItem elimina la línea id. Nunca deja el borrador sin líneas: devuelve false en ese caso
// o si la línea no existe.
func (d *InvoiceDraft) RemoveItem(id string) bool {
	if len(d.Items) <= 1 {
		return false
	}
	for i, it := range d.Items {
		if it.ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem reemplaza descripción, cantidad y precio de la línea id.
func (d *InvoiceDraft) UpdateItem(id, description string, quantity int, unitPrice decimal.Decimal) bool {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items[i].Description = description
			d.Items[i].Quantity = quantity
			d.Items[i].UnitPrice = unitPrice
			return true
		}
	}
	return false
}

// Total Σ cantidad × precio sobre TODAS las líneas, también las que no tienen descripción
// (esas no se imprimen en la tabla pero sí suman).
func (d *InvoiceDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// BillableItems líneas con descripción, en orden.
func (d *InvoiceDraft) BillableItems() []LineItem {
	out := make([]LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.Billable() {
			out = append(out, it)
		}
	}
	return out
}

// HasBillableItems al menos una línea con descripción.
func (d *InvoiceDraft) HasBillableItems() bool {
	for _, it := range d.Items {
		if it.Billable() {
			return true
		}
	}
	return false
}

// DueDate fecha de emisión + plazo de pago.
func (d *InvoiceDraft) DueDate() time.Time {
	return d.IssuedAt.AddDate(0, 0, InvoicePaymentTermDays)
}

// Filename "{número}-{cliente con espacios reemplazados por guiones}.pdf".
func (d *InvoiceDraft) Filename() string {
	return d.InvoiceNumber + "-" + whitespaceRun.ReplaceAllString(d.ClientName, "-") + ".pdf"
}

// SubmissionKey identidad del borrador para la guardia de envíos (operación + borrador).
// No usa el número: se repite cada 1000 s y el usuario puede fijarlo.
func (d *InvoiceDraft) SubmissionKey() string {
	return "invoice:" + d.ID
}
