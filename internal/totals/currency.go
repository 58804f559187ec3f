package totals

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FallbackCurrency is used for display when a code is unknown.
const FallbackCurrency = "USD"

type currencyFormat struct {
	symbol   string
	decimals int32
	indian   bool
}

var currencies = map[string]currencyFormat{
	"INR": {symbol: "₹", decimals: 2, indian: true},
	"USD": {symbol: "$", decimals: 2},
	"EUR": {symbol: "€", decimals: 2},
	"GBP": {symbol: "£", decimals: 2},
	"AED": {symbol: "AED ", decimals: 2},
	"SGD": {symbol: "S$", decimals: 2},
	"AUD": {symbol: "A$", decimals: 2},
	"CAD": {symbol: "CA$", decimals: 2},
	"JPY": {symbol: "¥", decimals: 0},
}

// NormalizeCurrency upper-cases code and falls back to USD when unknown.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := currencies[code]; ok {
		return code
	}
	return FallbackCurrency
}

// FormatCurrency renders amount for display, e.g. "₹1,23,456.50" or "$1,234.50".
// It is presentation only and never feeds back into calculation.
func FormatCurrency(amount float64, code string) string {
	format := currencies[NormalizeCurrency(code)]

	value := decimal.NewFromFloat(amount).Round(format.decimals)
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}

	fixed := value.StringFixed(format.decimals)
	whole, frac, _ := strings.Cut(fixed, ".")
	if format.indian {
		whole = groupIndian(whole)
	} else {
		whole = groupThousands(whole)
	}
	if frac != "" {
		whole += "." + frac
	}
	return sign + format.symbol + whole
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// groupIndian uses lakh/crore grouping: last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
