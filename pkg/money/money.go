// Package money formatea montos con un único par locale/moneda por documento.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos como "<CÓDIGO> <número agrupado con 2 decimales>".
type Formatter struct {
	code string
	tag  language.Tag
}

// KES es el formateador de la aplicación: chelines kenianos con agrupación inglesa (en-KE).
var KES = NewFormatter("KES", language.English)

// NewFormatter construye un formateador para el código ISO 4217 y el locale dados.
func NewFormatter(code string, tag language.Tag) Formatter {
	return Formatter{code: code, tag: tag}
}

// Code devuelve el código de moneda.
func (f Formatter) Code() string { return f.code }

// Format: 1500 → "KES 1,500.00". Redondea a 2 decimales (half-up, como decimal.Round).
// Los centavos salen de StringFixed: sin pasar por float64.
func (f Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, cents, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// fuera de int64: sin agrupar
		return f.code + " " + sign + fixed
	}
	// message.Printer no es seguro para uso concurrente: uno por llamada.
	p := message.NewPrinter(f.tag)
	point := strings.Trim(p.Sprint(number.Decimal(0.5, number.Scale(1))), "05")
	return f.code + " " + sign + p.Sprint(number.Decimal(n)) + point + cents
}
