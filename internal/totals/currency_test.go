package totals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		code   string
		want   string
	}{
		{amount: 1234.5, code: "USD", want: "$1,234.50"},
		{amount: 123456.5, code: "inr", want: "₹1,23,456.50"},
		{amount: 12345678, code: "INR", want: "₹1,23,45,678.00"},
		{amount: 999, code: "EUR", want: "€999.00"},
		{amount: 1500, code: "JPY", want: "¥1,500"},
		{amount: -42.1, code: "GBP", want: "-£42.10"},
		{amount: 10, code: "XYZ", want: "$10.00"},
		{amount: 10, code: "", want: "$10.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(tc.amount, tc.code), "%v %s", tc.amount, tc.code)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "INR", NormalizeCurrency(" inr "))
	assert.Equal(t, FallbackCurrency, NormalizeCurrency("BTC"))
}
