package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/catalog/domain"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/observability/metrics"
	"github.com/smallbiznis/hynox/internal/totals"
	"github.com/smallbiznis/hynox/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("catalog.service"),
		repo:    p.Repo,
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.ServiceItem, error) {
	items, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ServiceItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		resp = append(resp, *item)
	}
	return resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.ServiceItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	price := req.Price.Float()
	if price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	item := &domain.ServiceItem{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       totals.Round2(price),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, item); err != nil {
		s.log.Error("failed to insert service", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.ServiceItem, error) {
	serviceID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.ServiceItem, error) {
	serviceID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		price := req.Price.Float()
		if price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		fields["price"] = totals.Round2(price)
	}
	if len(fields) == 0 {
		return item, nil
	}
	fields["updated_at"] = s.clock.Now()

	if err := s.repo.Updates(ctx, s.db, serviceID, fields); err != nil {
		s.log.Error("failed to update service", zap.String("service_id", serviceID.String()), zap.Error(err))
		return nil, err
	}
	return s.Get(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) (repository.DeleteOutcome, error) {
	serviceID, err := parseID(req.ID)
	if err != nil {
		return "", err
	}

	outcome, err := repository.Delete[domain.ServiceItem](ctx, s.db, s.repo, serviceID, req.Hard, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		s.log.Error("failed to delete service", zap.String("service_id", serviceID.String()), zap.Error(err))
		return "", err
	}

	s.metrics.RecordDeletion(ctx, "service", req.Hard)
	return outcome, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
