package service

import (
	"context"

	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Defaults *config.DefaultsHolder `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	defaults *config.DefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("settings.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) Get(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := s.loadOrSeed(ctx, tx)
		if err != nil {
			return err
		}
		out = copyValues(settings.Values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Merge(ctx context.Context, values map[string]any) (map[string]any, error) {
	var out map[string]any
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := s.loadOrSeed(ctx, tx)
		if err != nil {
			return err
		}

		merged := copyValues(settings.Values)
		for key, value := range values {
			if value == nil {
				delete(merged, key)
				continue
			}
			merged[key] = value
		}
		settings.Values = datatypes.JSONMap(merged)
		settings.UpdatedAt = s.clock.Now()

		if err := s.repo.Save(ctx, tx, settings); err != nil {
			return err
		}
		out = copyValues(settings.Values)
		return nil
	})
	if err != nil {
		s.log.Error("failed to merge settings", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *Service) loadOrSeed(ctx context.Context, tx *gorm.DB) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx, tx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	d := s.defaults.Get().Settings
	seed := &domain.Settings{
		Values: datatypes.JSONMap{
			domain.KeyDefaultTax:      d.DefaultTax,
			domain.KeyDefaultCurrency: d.DefaultCurrency,
		},
		UpdatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertIfAbsent(ctx, tx, seed); err != nil {
		return nil, err
	}
	s.log.Info("settings seeded from defaults")

	return s.repo.Get(ctx, tx)
}

func copyValues(values datatypes.JSONMap) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}
