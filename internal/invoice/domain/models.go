// Package domain contains the invoice model and its lifecycle contracts.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/document"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Draft"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusSent    InvoiceStatus = "Sent"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
)

var invoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusPending,
	InvoiceStatusSent,
	InvoiceStatusPaid,
}

// ParseStatus matches value case-insensitively against the known states.
func ParseStatus(value string) (InvoiceStatus, bool) {
	value = strings.TrimSpace(value)
	for _, status := range invoiceStatuses {
		if strings.EqualFold(value, string(status)) {
			return status, true
		}
	}
	return "", false
}

// Invoice is a billed document. Figures in the embedded body are always
// server-computed.
type Invoice struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`
	document.Body
	DueDate   string        `gorm:"column:due_date" json:"dueDate,omitempty"`
	Status    InvoiceStatus `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"`
	CreatedAt time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"not null" json:"updatedAt"`
	DeletedAt *time.Time    `gorm:"index" json:"deletedAt,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
