// Package totals computes document figures for invoices and quotations.
package totals

import (
	"github.com/shopspring/decimal"
)

// Line is one priced entry. Quantity and unit price are taken as given;
// negative values are not clamped.
type Line struct {
	Quantity  float64
	UnitPrice float64
}

// TaxConfig carries either one flat percent or the split GST percents.
// When any split rate is set the split rates win and are summed.
type TaxConfig struct {
	Rate *float64
	CGST *float64
	SGST *float64
	IGST *float64
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// Percent returns the effective tax percent for the configuration.
func (t TaxConfig) Percent() float64 {
	return t.percent().InexactFloat64()
}

func (t TaxConfig) IsSplit() bool {
	return t.CGST != nil || t.SGST != nil || t.IGST != nil
}

func (t TaxConfig) percent() decimal.Decimal {
	if t.IsSplit() {
		return fromPtr(t.CGST).Add(fromPtr(t.SGST)).Add(fromPtr(t.IGST))
	}
	return fromPtr(t.Rate)
}

// Calculate never fails: an empty item list yields zero figures and the
// total is floored at zero when the discount exceeds subtotal plus tax.
func Calculate(lines []Line, tax TaxConfig, discount float64) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(line.Quantity).Mul(decimal.NewFromFloat(line.UnitPrice)))
	}
	subtotal = subtotal.Round(2)

	taxAmount := subtotal.Mul(tax.percent()).Div(hundred).Round(2)

	total := subtotal.Add(taxAmount).Sub(decimal.NewFromFloat(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      taxAmount.InexactFloat64(),
		Total:    total.Round(2).InexactFloat64(),
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Equal reports whether two totals agree to the cent.
func (t Totals) Equal(other Totals) bool {
	return Round2(t.Subtotal) == Round2(other.Subtotal) &&
		Round2(t.Tax) == Round2(other.Tax) &&
		Round2(t.Total) == Round2(other.Total)
}

func fromPtr(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
