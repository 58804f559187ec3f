package domain

import (
	"context"

	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
)

// RecentLimit bounds the recent invoice and quotation lists.
const RecentLimit = 5

// Stats summarises non-deleted records for the dashboard landing page.
type Stats struct {
	TotalInvoices        int64                       `json:"totalInvoices"`
	TotalQuotations      int64                       `json:"totalQuotations"`
	TotalClients         int64                       `json:"totalClients"`
	PendingPayments      float64                     `json:"pendingPayments"`
	TotalInvoiceAmount   float64                     `json:"totalInvoiceAmount"`
	TotalQuotationAmount float64                     `json:"totalQuotationAmount"`
	Currency             string                      `json:"currency"`
	Formatted            FormattedStats              `json:"formatted"`
	RecentInvoices       []invoicedomain.Invoice     `json:"recentInvoices"`
	RecentQuotations     []quotationdomain.Quotation `json:"recentQuotations"`
}

// FormattedStats holds the money figures rendered for display.
type FormattedStats struct {
	PendingPayments      string `json:"pendingPayments"`
	TotalInvoiceAmount   string `json:"totalInvoiceAmount"`
	TotalQuotationAmount string `json:"totalQuotationAmount"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}
