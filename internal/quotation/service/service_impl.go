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
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
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
	Repo     quotationdomain.Repository
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
	repo           quotationdomain.Repository
	defaults       *config.DefaultsHolder
	settings       settingsdomain.Service
	metrics        *metrics.Metrics
}

func NewService(p ServiceParam) quotationdomain.Service {
	template := strings.TrimSpace(p.Cfg.Numbering.QuotationTemplate)
	if template == "" {
		template = document.DefaultQuotationNumberTemplate
	}

	return &Service{
		db:    p.DB,
		log:   p.Log.Named("quotation.service"),
		genID: p.GenID,
		clock: p.Clock,

		numberTemplate: template,
		repo:           p.Repo,
		defaults:       p.Defaults,
		settings:       p.Settings,
		metrics:        p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req quotationdomain.CreateQuotationRequest) (quotationdomain.Quotation, error) {
	now := s.clock.Now()
	quotation := quotationdomain.Quotation{
		ID:        s.genID.Generate(),
		Status:    quotationdomain.QuotationStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status, ok := quotationdomain.ParseStatus(*req.Status)
		if !ok {
			return quotationdomain.Quotation{}, quotationdomain.ErrInvalidStatus
		}
		quotation.Status = status
	}
	if req.ValidUntil != nil {
		quotation.ValidUntil = strings.TrimSpace(*req.ValidUntil)
	}

	figures := quotation.Prepare(req.Input, now, s.defaultCurrency(ctx))
	if quotation.Number == "" {
		number, err := s.nextQuotationNumber(ctx, quotation.IssueTime(now))
		if err != nil {
			return quotationdomain.Quotation{}, err
		}
		quotation.Number = number
	}

	if req.Input.Mismatch(figures) {
		s.logMismatch(ctx, quotation.ID, req.Input, figures)
	}

	if err := s.repo.Insert(ctx, s.db, &quotation); err != nil {
		logger.WithContext(ctx, s.log).Error("failed to insert quotation", zap.Error(err))
		return quotationdomain.Quotation{}, err
	}

	s.metrics.RecordDocumentCreated(ctx, "quotation")
	return quotation, nil
}

func (s *Service) List(ctx context.Context) ([]quotationdomain.Quotation, error) {
	items, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	quotations := make([]quotationdomain.Quotation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		quotations = append(quotations, *item)
	}
	return quotations, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (quotationdomain.Quotation, error) {
	quotationID, err := parseID(id)
	if err != nil {
		return quotationdomain.Quotation{}, quotationdomain.ErrInvalidQuotationID
	}

	item, err := s.repo.FindByID(ctx, s.db, quotationID)
	if err != nil {
		return quotationdomain.Quotation{}, err
	}
	if item == nil {
		return quotationdomain.Quotation{}, quotationdomain.ErrQuotationNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req quotationdomain.UpdateQuotationRequest) (quotationdomain.Quotation, error) {
	quotationID, err := parseID(req.ID)
	if err != nil {
		return quotationdomain.Quotation{}, quotationdomain.ErrInvalidQuotationID
	}

	quotation, err := s.repo.FindByID(ctx, s.db, quotationID)
	if err != nil {
		return quotationdomain.Quotation{}, err
	}
	if quotation == nil {
		return quotationdomain.Quotation{}, quotationdomain.ErrQuotationNotFound
	}

	var status quotationdomain.QuotationStatus
	if req.Status != nil {
		parsed, ok := quotationdomain.ParseStatus(*req.Status)
		if !ok {
			return quotationdomain.Quotation{}, quotationdomain.ErrInvalidStatus
		}
		status = parsed
	}

	fields := req.Input.Apply(&quotation.Body)
	if req.ValidUntil != nil {
		fields["valid_until"] = strings.TrimSpace(*req.ValidUntil)
	}
	if status != "" {
		fields["status"] = status
	}
	if len(fields) == 0 {
		return *quotation, nil
	}
	if req.Input.Mismatch(quotation.Totals()) {
		s.logMismatch(ctx, quotationID, req.Input, quotation.Totals())
	}
	fields["updated_at"] = s.clock.Now()

	if err := s.repo.Updates(ctx, s.db, quotationID, fields); err != nil {
		logger.WithContext(ctx, s.log).Error("failed to update quotation",
			zap.String("quotation_id", quotationID.String()),
			zap.Error(err),
		)
		return quotationdomain.Quotation{}, err
	}

	return s.GetByID(ctx, req.ID)
}

func (s *Service) UpdateStatus(ctx context.Context, req quotationdomain.UpdateStatusRequest) (quotationdomain.Quotation, error) {
	quotationID, err := parseID(req.ID)
	if err != nil {
		return quotationdomain.Quotation{}, quotationdomain.ErrInvalidQuotationID
	}
	status, ok := quotationdomain.ParseStatus(req.Status)
	if !ok {
		return quotationdomain.Quotation{}, quotationdomain.ErrInvalidStatus
	}

	quotation, err := s.repo.FindByID(ctx, s.db, quotationID)
	if err != nil {
		return quotationdomain.Quotation{}, err
	}
	if quotation == nil {
		return quotationdomain.Quotation{}, quotationdomain.ErrQuotationNotFound
	}

	if err := s.repo.Updates(ctx, s.db, quotationID, map[string]any{
		"status":     status,
		"updated_at": s.clock.Now(),
	}); err != nil {
		return quotationdomain.Quotation{}, err
	}

	logger.WithContext(ctx, s.log).Info("quotation status changed",
		zap.String("quotation_id", quotationID.String()),
		zap.String("previous_status", string(quotation.Status)),
		zap.String("status", string(status)),
	)
	return s.GetByID(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, req quotationdomain.DeleteQuotationRequest) (repository.DeleteOutcome, error) {
	quotationID, err := parseID(req.ID)
	if err != nil {
		return "", quotationdomain.ErrInvalidQuotationID
	}

	outcome, err := repository.Delete[quotationdomain.Quotation](ctx, s.db, s.repo, quotationID, req.Hard, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", quotationdomain.ErrQuotationNotFound
		}
		logger.WithContext(ctx, s.log).Error("failed to delete quotation",
			zap.String("quotation_id", quotationID.String()),
			zap.Bool("hard", req.Hard),
			zap.Error(err),
		)
		return "", err
	}

	s.metrics.RecordDeletion(ctx, "quotation", req.Hard)
	return outcome, nil
}

func (s *Service) nextQuotationNumber(ctx context.Context, issuedAt time.Time) (string, error) {
	return document.NextNumber(s.numberTemplate, issuedAt, func(from, to string) ([]string, error) {
		return s.repo.NumbersIssuedBetween(ctx, s.db, from, to)
	})
}

// defaultCurrency prefers the stored defaultCurrency setting over configured defaults.
func (s *Service) defaultCurrency(ctx context.Context) string {
	code, err := settingsdomain.ResolveCurrency(ctx, s.settings, s.defaults.Get().Settings.DefaultCurrency)
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to read settings for quotation currency", zap.Error(err))
	}
	return code
}

func (s *Service) logMismatch(ctx context.Context, id snowflake.ID, in document.Input, computed totals.Totals) {
	fields := []zap.Field{
		zap.String("quotation_id", id.String()),
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
		return 0, quotationdomain.ErrInvalidQuotationID
	}
	return id, nil
}
