// Package domain contains the quotation model and its lifecycle contracts.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/document"
)

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusRejected QuotationStatus = "Rejected"
)

var quotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusAccepted,
	QuotationStatusRejected,
}

func ParseStatus(value string) (QuotationStatus, bool) {
	value = strings.TrimSpace(value)
	for _, status := range quotationStatuses {
		if strings.EqualFold(value, string(status)) {
			return status, true
		}
	}
	return "", false
}

// Quotation is a priced offer sent before any invoice exists.
type Quotation struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`
	document.Body
	ValidUntil string          `gorm:"column:valid_until" json:"validUntil,omitempty"`
	Status     QuotationStatus `gorm:"type:varchar(16);not null;default:'Draft'" json:"status"`
	CreatedAt  time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updatedAt"`
	DeletedAt  *time.Time      `gorm:"index" json:"deletedAt,omitempty"`
}

func (Quotation) TableName() string { return "quotations" }
