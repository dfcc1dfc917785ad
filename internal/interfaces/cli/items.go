package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemSpec línea de factura leída de --item "descripción:cantidad:precio".
type ItemSpec struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ParseItem separa por los dos últimos ':' para que la descripción pueda contenerlos.
// El precio acepta separador de miles ("1,500.00").
func ParseItem(s string) (ItemSpec, error) {
	last := strings.LastIndex(s, ":")
	if last < 0 {
		return ItemSpec{}, fmt.Errorf("item %q: expected \"description:quantity:price\"", s)
	}
	mid := strings.LastIndex(s[:last], ":")
	if mid < 0 {
		return ItemSpec{}, fmt.Errorf("item %q: expected \"description:quantity:price\"", s)
	}
	desc := strings.TrimSpace(s[:mid])
	qty, err := strconv.Atoi(strings.TrimSpace(s[mid+1 : last]))
	if err != nil || qty < 0 {
		return ItemSpec{}, fmt.Errorf("item %q: quantity must be a whole number of 0 or more", s)
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s[last+1:]), ",", ""))
	if err != nil || price.IsNegative() {
		return ItemSpec{}, fmt.Errorf("item %q: price must be a number of 0 or more", s)
	}
	return ItemSpec{Description: desc, Quantity: qty, UnitPrice: price}, nil
}
