package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/jhoicas/mtaabiz/pkg/money"
)

func TestKES_Format(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(1500), "KES 1,500.00"},
		{decimal.NewFromInt(250), "KES 250.00"},
		{decimal.Zero, "KES 0.00"},
		{decimal.RequireFromString("1234567.891"), "KES 1,234,567.89"},
		{decimal.RequireFromString("99.5"), "KES 99.50"},
		{decimal.RequireFromString("0.005"), "KES 0.01"},
		{decimal.RequireFromString("-1500.5"), "KES -1,500.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money.KES.Format(tc.in), "monto %s", tc.in)
	}
}

func TestKES_Code(t *testing.T) {
	assert.Equal(t, "KES", money.KES.Code())
}

func TestKES_Format_MontosGrandesSinPerderCentavos(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123456789012345678.99", "KES 123,456,789,012,345,678.99"},
		{"9007199254740993.01", "KES 9,007,199,254,740,993.01"},
		{"99999999999.995", "KES 100,000,000,000.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money.KES.Format(decimal.RequireFromString(tc.in)), tc.in)
	}
}

func TestNewFormatter_SeparadoresDelLocale(t *testing.T) {
	de := money.NewFormatter("EUR", language.German)
	assert.Equal(t, "EUR 1.234.567,89", de.Format(decimal.RequireFromString("1234567.891")))
}
