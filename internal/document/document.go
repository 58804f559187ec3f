// Package document holds the pieces shared by invoices and quotations:
// line items, party blocks, tax inputs and number templates.
package document

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/smallbiznis/hynox/internal/totals"
)

// Number decodes JSON numbers and numeric strings; any other value becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(parsed)
			return nil
		}
	}

	*n = 0
	return nil
}

func (n Number) Float() float64 { return float64(n) }

type LineItem struct {
	ID                string `json:"id"`
	Description       string `json:"description"`
	Quantity          Number `json:"quantity"`
	UnitPrice         Number `json:"unitPrice"`
	SelectedServiceID string `json:"selectedServiceId,omitempty"`
}

func (i LineItem) Amount() float64 {
	return i.Quantity.Float() * i.UnitPrice.Float()
}

type PartyInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Lines converts items for the totals calculator.
func Lines(items []LineItem) []totals.Line {
	lines := make([]totals.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, totals.Line{
			Quantity:  item.Quantity.Float(),
			UnitPrice: item.UnitPrice.Float(),
		})
	}
	return lines
}
