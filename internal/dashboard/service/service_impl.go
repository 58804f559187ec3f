package service

import (
	"context"
	"fmt"

	clientdomain "github.com/smallbiznis/hynox/internal/client/domain"
	"github.com/smallbiznis/hynox/internal/config"
	dashboard "github.com/smallbiznis/hynox/internal/dashboard/domain"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
	settingsdomain "github.com/smallbiznis/hynox/internal/settings/domain"
	"github.com/smallbiznis/hynox/internal/totals"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	SettingsSvc settingsdomain.Service `optional:"true"`
	Defaults    *config.DefaultsHolder `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	settingsSvc settingsdomain.Service
	defaults    *config.DefaultsHolder
}

func NewService(p Params) dashboard.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		settingsSvc: p.SettingsSvc,
		defaults:    p.Defaults,
	}
}

type amountRow struct {
	Count int64   `gorm:"column:count"`
	Total float64 `gorm:"column:total"`
}

func (s *Service) Stats(ctx context.Context) (dashboard.Stats, error) {
	db := s.db.WithContext(ctx)

	invoices, err := s.aggregate(db, invoicedomain.Invoice{}.TableName(), "")
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("aggregate invoices: %w", err)
	}
	pending, err := s.aggregate(db, invoicedomain.Invoice{}.TableName(), string(invoicedomain.InvoiceStatusPending))
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("aggregate pending invoices: %w", err)
	}
	quotations, err := s.aggregate(db, quotationdomain.Quotation{}.TableName(), "")
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("aggregate quotations: %w", err)
	}

	var clients int64
	if err := db.Model(&clientdomain.Client{}).Where("deleted_at IS NULL").Count(&clients).Error; err != nil {
		return dashboard.Stats{}, fmt.Errorf("count clients: %w", err)
	}

	recentInvoices := make([]invoicedomain.Invoice, 0, dashboard.RecentLimit)
	if err := db.Where("deleted_at IS NULL").
		Order("issue_date desc, created_at desc").
		Limit(dashboard.RecentLimit).
		Find(&recentInvoices).Error; err != nil {
		return dashboard.Stats{}, fmt.Errorf("recent invoices: %w", err)
	}

	recentQuotations := make([]quotationdomain.Quotation, 0, dashboard.RecentLimit)
	if err := db.Where("deleted_at IS NULL").
		Order("issue_date desc, created_at desc").
		Limit(dashboard.RecentLimit).
		Find(&recentQuotations).Error; err != nil {
		return dashboard.Stats{}, fmt.Errorf("recent quotations: %w", err)
	}

	currency := s.currency(ctx)
	stats := dashboard.Stats{
		TotalInvoices:        invoices.Count,
		TotalQuotations:      quotations.Count,
		TotalClients:         clients,
		PendingPayments:      totals.Round2(pending.Total),
		TotalInvoiceAmount:   totals.Round2(invoices.Total),
		TotalQuotationAmount: totals.Round2(quotations.Total),
		Currency:             currency,
		RecentInvoices:       recentInvoices,
		RecentQuotations:     recentQuotations,
	}
	stats.Formatted = dashboard.FormattedStats{
		PendingPayments:      totals.FormatCurrency(stats.PendingPayments, currency),
		TotalInvoiceAmount:   totals.FormatCurrency(stats.TotalInvoiceAmount, currency),
		TotalQuotationAmount: totals.FormatCurrency(stats.TotalQuotationAmount, currency),
	}
	return stats, nil
}

func (s *Service) aggregate(db *gorm.DB, table, status string) (amountRow, error) {
	var row amountRow
	stmt := db.Table(table).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("deleted_at IS NULL")
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}
	if err := stmt.Scan(&row).Error; err != nil {
		return amountRow{}, err
	}
	return row, nil
}

// currency prefers the stored defaultCurrency setting over configured defaults.
func (s *Service) currency(ctx context.Context) string {
	code, err := settingsdomain.ResolveCurrency(ctx, s.settingsSvc, s.defaults.Get().Settings.DefaultCurrency)
	if err != nil {
		s.log.Warn("failed to read settings for dashboard currency", zap.Error(err))
	}
	return code
}
