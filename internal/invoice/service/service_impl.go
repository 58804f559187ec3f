package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/internal/document"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	"github.com/smallbiznis/hynox/internal/observability/logger"
	"github.com/smallbiznis/hynox/internal/observability/metrics"
	settingsdomain "github.com/smallbiznis/hynox/internal/settings/domain"
	"github.com/smallbiznis/hynox/internal/totals"
	"github.com/smallbiznis/hynox/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	Repo     invoicedomain.Repository
	Defaults *config.DefaultsHolder `optional:"true"`
	Settings settingsdomain.Service `optional:"true"`
	Metrics  *metrics.Metrics       `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID          *snowflake.Node
	clock          clock.Clock
	numberTemplate string
	invoicerepo    invoicedomain.Repository
	defaults       *config.DefaultsHolder
	settings       settingsdomain.Service
	metrics        *metrics.Metrics
}

func NewService(p ServiceParam) invoicedomain.Service {
	template := strings.TrimSpace(p.Cfg.Numbering.InvoiceTemplate)
	if template == "" {
		template = document.DefaultInvoiceNumberTemplate
	}

	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,

		numberTemplate: template,
		invoicerepo:    p.Repo,
		defaults:       p.Defaults,
		settings:       p.Settings,
		metrics:        p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	now := s.clock.Now()
	invoice := invoicedomain.Invoice{
		ID:        s.genID.Generate(),
		Status:    invoicedomain.InvoiceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status, ok := invoicedomain.ParseStatus(*req.Status)
		if !ok {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
		}
		invoice.Status = status
	}
	if req.DueDate != nil {
		invoice.DueDate = strings.TrimSpace(*req.DueDate)
	}

	figures := invoice.Prepare(req.Input, now, s.defaultCurrency(ctx))
	if invoice.Number == "" {
		number, err := s.nextInvoiceNumber(ctx, invoice.IssueTime(now))
		if err != nil {
			return invoicedomain.Invoice{}, err
		}
		invoice.Number = number
	}

	if req.Input.Mismatch(figures) {
		s.logMismatch(ctx, invoice.ID, req.Input, figures)
	}

	if err := s.invoicerepo.Insert(ctx, s.db, &invoice); err != nil {
		logger.WithContext(ctx, s.log).Error("failed to insert invoice", zap.Error(err))
		return invoicedomain.Invoice{}, err
	}

	s.metrics.RecordDocumentCreated(ctx, "invoice")
	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	items, err := s.invoicerepo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID
	}

	item, err := s.invoicerepo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if item == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(req.ID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID
	}

	invoice, err := s.invoicerepo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if invoice == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}

	var status invoicedomain.InvoiceStatus
	if req.Status != nil {
		parsed, ok := invoicedomain.ParseStatus(*req.Status)
		if !ok {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
		}
		status = parsed
	}

	fields := req.Input.Apply(&invoice.Body)
	if req.DueDate != nil {
		fields["due_date"] = strings.TrimSpace(*req.DueDate)
	}
	if status != "" {
		fields["status"] = status
	}
	if len(fields) == 0 {
		return *invoice, nil
	}
	if req.Input.Mismatch(invoice.Totals()) {
		s.logMismatch(ctx, invoiceID, req.Input, invoice.Totals())
	}
	fields["updated_at"] = s.clock.Now()

	if err := s.invoicerepo.Updates(ctx, s.db, invoiceID, fields); err != nil {
		logger.WithContext(ctx, s.log).Error("failed to update invoice",
			zap.String("invoice_id", invoiceID.String()),
			zap.Error(err),
		)
		return invoicedomain.Invoice{}, err
	}

	return s.GetByID(ctx, req.ID)
}

func (s *Service) UpdateStatus(ctx context.Context, req invoicedomain.UpdateStatusRequest) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(req.ID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID
	}
	status, ok := invoicedomain.ParseStatus(req.Status)
	if !ok {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
	}

	invoice, err := s.invoicerepo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if invoice == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}

	if err := s.invoicerepo.Updates(ctx, s.db, invoiceID, map[string]any{
		"status":     status,
		"updated_at": s.clock.Now(),
	}); err != nil {
		return invoicedomain.Invoice{}, err
	}

	logger.WithContext(ctx, s.log).Info("invoice status changed",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("previous_status", string(invoice.Status)),
		zap.String("status", string(status)),
	)
	return s.GetByID(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, req invoicedomain.DeleteInvoiceRequest) (repository.DeleteOutcome, error) {
	invoiceID, err := parseID(req.ID)
	if err != nil {
		return "", invoicedomain.ErrInvalidInvoiceID
	}

	outcome, err := repository.Delete[invoicedomain.Invoice](ctx, s.db, s.invoicerepo, invoiceID, req.Hard, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", invoicedomain.ErrInvoiceNotFound
		}
		logger.WithContext(ctx, s.log).Error("failed to delete invoice",
			zap.String("invoice_id", invoiceID.String()),
			zap.Bool("hard", req.Hard),
			zap.Error(err),
		)
		return "", err
	}

	s.metrics.RecordDeletion(ctx, "invoice", req.Hard)
	return outcome, nil
}

func (s *Service) nextInvoiceNumber(ctx context.Context, issuedAt time.Time) (string, error) {
	return document.NextNumber(s.numberTemplate, issuedAt, func(from, to string) ([]string, error) {
		return s.invoicerepo.NumbersIssuedBetween(ctx, s.db, from, to)
	})
}

// defaultCurrency prefers the stored defaultCurrency setting over configured defaults.
func (s *Service) defaultCurrency(ctx context.Context) string {
	code, err := settingsdomain.ResolveCurrency(ctx, s.settings, s.defaults.Get().Settings.DefaultCurrency)
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to read settings for invoice currency", zap.Error(err))
	}
	return code
}

func (s *Service) logMismatch(ctx context.Context, id snowflake.ID, in document.Input, computed totals.Totals) {
	fields := []zap.Field{
		zap.String("invoice_id", id.String()),
		zap.Float64("subtotal", computed.Subtotal),
		zap.Float64("tax", computed.Tax),
		zap.Float64("total", computed.Total),
	}
	if in.Total != nil {
		fields = append(fields, zap.Float64("submitted_total", in.Total.Float()))
	}
	logger.WithContext(ctx, s.log).Warn("totals_mismatch", fields...)
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, invoicedomain.ErrInvalidInvoiceID
	}
	return id, nil
}
