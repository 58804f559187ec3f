package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/hynox/internal/client/domain"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/internal/document"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func TestStatsAggregatesActiveRecords(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&invoicedomain.Invoice{}, &quotationdomain.Quotation{}, &clientdomain.Client{}))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	deletedAt := base.Add(time.Hour)
	empty := datatypes.NewJSONSlice([]document.LineItem{})

	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusPending, Body: document.Body{IssueDate: "2025-01-05", Total: 1000, Items: empty}},
		{Status: invoicedomain.InvoiceStatusPending, Body: document.Body{IssueDate: "2025-02-05", Total: 234.5, Items: empty}},
		{Status: invoicedomain.InvoiceStatusPaid, Body: document.Body{IssueDate: "2025-03-05", Total: 100, Items: empty}},
		{Status: invoicedomain.InvoiceStatusPending, Body: document.Body{IssueDate: "2025-04-05", Total: 5000, Items: empty}, DeletedAt: &deletedAt},
	}
	for i := range invoices {
		invoices[i].ID = snowflake.ID(100 + i)
		invoices[i].Number = fmt.Sprintf("INV-2025-%03d", i+1)
		invoices[i].CreatedAt = base
		invoices[i].UpdatedAt = base
		require.NoError(t, conn.Create(&invoices[i]).Error)
	}
	for i := 0; i < 7; i++ {
		q := quotationdomain.Quotation{
			ID:        snowflake.ID(200 + i),
			Status:    quotationdomain.QuotationStatusDraft,
			Body:      document.Body{IssueDate: fmt.Sprintf("2025-05-%02d", i+1), Total: 10, Items: empty},
			CreatedAt: base,
			UpdatedAt: base,
		}
		require.NoError(t, conn.Create(&q).Error)
	}
	require.NoError(t, conn.Create(&clientdomain.Client{ID: 1, Name: "A", CreatedAt: base, UpdatedAt: base}).Error)
	require.NoError(t, conn.Create(&clientdomain.Client{ID: 2, Name: "B", CreatedAt: base, UpdatedAt: base, DeletedAt: &deletedAt}).Error)

	svc := NewService(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		Defaults: config.NewStaticDefaultsHolder(config.BuiltinDefaults()),
	})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalInvoices)
	assert.EqualValues(t, 7, stats.TotalQuotations)
	assert.EqualValues(t, 1, stats.TotalClients)
	assert.Equal(t, 1234.5, stats.PendingPayments)
	assert.Equal(t, 1334.5, stats.TotalInvoiceAmount)
	assert.Equal(t, 70.0, stats.TotalQuotationAmount)
	assert.Equal(t, "INR", stats.Currency)
	assert.Equal(t, "₹1,234.50", stats.Formatted.PendingPayments)

	require.Len(t, stats.RecentInvoices, 3)
	assert.Equal(t, "2025-03-05", stats.RecentInvoices[0].IssueDate)
	require.Len(t, stats.RecentQuotations, 5)
	assert.Equal(t, "2025-05-07", stats.RecentQuotations[0].IssueDate)
}
