package document

import (
	"strings"
	"time"

	"github.com/smallbiznis/hynox/internal/totals"
	"gorm.io/datatypes"
)

// Body is the column set shared by invoices and quotations. It is embedded
// in both models and flattened into their tables and JSON.
type Body struct {
	Number    string                        `gorm:"column:number;index" json:"number"`
	IssueDate string                        `gorm:"column:issue_date;index" json:"issueDate"`
	From      datatypes.JSONType[PartyInfo] `gorm:"column:from_party" json:"from"`
	To        datatypes.JSONType[PartyInfo] `gorm:"column:to_party" json:"to"`
	Items     datatypes.JSONSlice[LineItem] `gorm:"column:items" json:"items"`
	TaxRate   *float64                      `gorm:"column:tax_rate" json:"taxRate,omitempty"`
	CGSTRate  *float64                      `gorm:"column:cgst_rate" json:"cgstRate,omitempty"`
	SGSTRate  *float64                      `gorm:"column:sgst_rate" json:"sgstRate,omitempty"`
	IGSTRate  *float64                      `gorm:"column:igst_rate" json:"igstRate,omitempty"`
	Discount  float64                       `gorm:"column:discount;not null;default:0" json:"discount"`
	Notes     string                        `gorm:"column:notes" json:"notes"`
	Currency  string                        `gorm:"column:currency" json:"currency"`
	Subtotal  float64                       `gorm:"column:subtotal;not null;default:0" json:"subtotal"`
	Tax       float64                       `gorm:"column:tax;not null;default:0" json:"tax"`
	Total     float64                       `gorm:"column:total;not null;default:0" json:"total"`
}

func (b *Body) TaxConfig() totals.TaxConfig {
	return totals.TaxConfig{
		Rate: b.TaxRate,
		CGST: b.CGSTRate,
		SGST: b.SGSTRate,
		IGST: b.IGSTRate,
	}
}

// Recalculate stores fresh figures derived from items, tax and discount.
func (b *Body) Recalculate() totals.Totals {
	t := totals.Calculate(Lines(b.Items), b.TaxConfig(), b.Discount)
	b.Subtotal = t.Subtotal
	b.Tax = t.Tax
	b.Total = t.Total
	return t
}

func (b *Body) Totals() totals.Totals {
	return totals.Totals{Subtotal: b.Subtotal, Tax: b.Tax, Total: b.Total}
}

// Input is the caller-supplied document payload. Nil fields are absent.
// Subtotal, tax and total are accepted for comparison only; stored figures
// are always recomputed.
type Input struct {
	Number    *string     `json:"number"`
	IssueDate *string     `json:"issueDate"`
	From      *PartyInfo  `json:"from"`
	To        *PartyInfo  `json:"to"`
	Items     *[]LineItem `json:"items"`
	TaxRate   *Number     `json:"taxRate"`
	CGSTRate  *Number     `json:"cgstRate"`
	SGSTRate  *Number     `json:"sgstRate"`
	IGSTRate  *Number     `json:"igstRate"`
	Discount  *Number     `json:"discount"`
	Notes     *string     `json:"notes"`
	Currency  *string     `json:"currency"`
	Subtotal  *Number     `json:"subtotal"`
	Tax       *Number     `json:"tax"`
	Total     *Number     `json:"total"`
}

// Apply merges the present fields into b and returns the changed columns.
// Figures are recomputed whenever a pricing input or a submitted figure is
// present. Setting taxRate without any split rate clears the split rates.
func (in Input) Apply(b *Body) map[string]any {
	fields := map[string]any{}

	if in.Number != nil {
		b.Number = strings.TrimSpace(*in.Number)
		fields["number"] = b.Number
	}
	if in.IssueDate != nil {
		b.IssueDate = strings.TrimSpace(*in.IssueDate)
		fields["issue_date"] = b.IssueDate
	}
	if in.From != nil {
		b.From = datatypes.NewJSONType(*in.From)
		fields["from_party"] = b.From
	}
	if in.To != nil {
		b.To = datatypes.NewJSONType(*in.To)
		fields["to_party"] = b.To
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
		fields["notes"] = b.Notes
	}
	if in.Currency != nil {
		b.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
		fields["currency"] = b.Currency
	}

	pricing := false
	if in.Items != nil {
		items := make([]LineItem, len(*in.Items))
		copy(items, *in.Items)
		b.Items = datatypes.NewJSONSlice(items)
		fields["items"] = b.Items
		pricing = true
	}
	if in.hasSplitRate() {
		b.CGSTRate = floatPtr(in.CGSTRate, b.CGSTRate)
		b.SGSTRate = floatPtr(in.SGSTRate, b.SGSTRate)
		b.IGSTRate = floatPtr(in.IGSTRate, b.IGSTRate)
		fields["cgst_rate"] = b.CGSTRate
		fields["sgst_rate"] = b.SGSTRate
		fields["igst_rate"] = b.IGSTRate
		pricing = true
	}
	if in.TaxRate != nil {
		rate := in.TaxRate.Float()
		b.TaxRate = &rate
		fields["tax_rate"] = b.TaxRate
		if !in.hasSplitRate() {
			b.CGSTRate, b.SGSTRate, b.IGSTRate = nil, nil, nil
			fields["cgst_rate"] = nil
			fields["sgst_rate"] = nil
			fields["igst_rate"] = nil
		}
		pricing = true
	}
	if in.Discount != nil {
		b.Discount = in.Discount.Float()
		fields["discount"] = b.Discount
		pricing = true
	}
	if in.Subtotal != nil || in.Tax != nil || in.Total != nil {
		pricing = true
	}

	if pricing {
		t := b.Recalculate()
		fields["subtotal"] = t.Subtotal
		fields["tax"] = t.Tax
		fields["total"] = t.Total
	}
	return fields
}

// Mismatch reports whether any submitted figure disagrees with t.
func (in Input) Mismatch(t totals.Totals) bool {
	differs := func(n *Number, want float64) bool {
		return n != nil && totals.Round2(n.Float()) != want
	}
	return differs(in.Subtotal, t.Subtotal) || differs(in.Tax, t.Tax) || differs(in.Total, t.Total)
}

func (in Input) hasSplitRate() bool {
	return in.CGSTRate != nil || in.SGSTRate != nil || in.IGSTRate != nil
}

// IssueTime resolves the date used for numbering; unparseable dates fall
// back to now.
func (b *Body) IssueTime(now time.Time) time.Time {
	if t := ParseIssueDate(b.IssueDate); !t.IsZero() {
		return t
	}
	return now
}

func floatPtr(in *Number, current *float64) *float64 {
	if in == nil {
		return current
	}
	v := in.Float()
	return &v
}

// Prepare fills a new body from in and applies the issue date and currency
// defaults. The number is left to the caller.
func (b *Body) Prepare(in Input, now time.Time, currency string) totals.Totals {
	in.Apply(b)
	if b.Items == nil {
		b.Items = datatypes.NewJSONSlice([]LineItem{})
	}
	if b.IssueDate == "" {
		b.IssueDate = now.Format(IssueDateLayout)
	}
	if b.Currency == "" {
		b.Currency = currency
	}
	return b.Recalculate()
}
