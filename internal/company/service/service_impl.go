package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/company/domain"
	"github.com/smallbiznis/hynox/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:      p.Log.Named("company.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

// Get returns the stored profile, seeding the configured defaults on first read.
func (s *Service) Get(ctx context.Context) (domain.CompanyInfo, error) {
	var out domain.CompanyInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		info, err := s.loadOrSeed(ctx, tx)
		if err != nil {
			return err
		}
		out = *info
		return nil
	})
	return out, err
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertRequest) (domain.CompanyInfo, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return domain.CompanyInfo{}, domain.ErrInvalidName
	}

	var out domain.CompanyInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		info, err := s.loadOrSeed(ctx, tx)
		if err != nil {
			return err
		}

		apply(&info.Name, req.Name)
		apply(&info.Address, req.Address)
		apply(&info.Email, req.Email)
		apply(&info.Phone, req.Phone)
		apply(&info.GSTNumber, req.GSTNumber)
		apply(&info.BankName, req.BankName)
		apply(&info.AccountName, req.AccountName)
		apply(&info.AccountNumber, req.AccountNumber)
		apply(&info.IFSC, req.IFSC)
		apply(&info.Branch, req.Branch)
		apply(&info.UPI, req.UPI)
		info.UpdatedAt = s.clock.Now()

		if err := s.repo.Save(ctx, tx, info); err != nil {
			return err
		}
		out = *info
		return nil
	})
	if err != nil {
		s.log.Error("failed to upsert company info", zap.Error(err))
		return domain.CompanyInfo{}, err
	}
	return out, nil
}

func (s *Service) loadOrSeed(ctx context.Context, tx *gorm.DB) (*domain.CompanyInfo, error) {
	info, err := s.repo.Get(ctx, tx)
	if err != nil {
		return nil, err
	}
	if info != nil {
		return info, nil
	}

	d := s.defaults.Get().Company
	seed := &domain.CompanyInfo{
		Name:          d.Name,
		Address:       d.Address,
		Email:         d.Email,
		Phone:         d.Phone,
		GSTNumber:     d.GSTNumber,
		BankName:      d.BankName,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		IFSC:          d.IFSC,
		Branch:        d.Branch,
		UPI:           d.UPI,
		UpdatedAt:     s.clock.Now(),
	}
	if err := s.repo.InsertIfAbsent(ctx, tx, seed); err != nil {
		return nil, err
	}
	s.log.Info("company info seeded from defaults")

	return s.repo.Get(ctx, tx)
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
