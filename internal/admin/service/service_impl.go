package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/admin/domain"
	"github.com/smallbiznis/hynox/internal/auth/password"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/observability/metrics"
	"github.com/smallbiznis/hynox/pkg/db"
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
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("admin.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAdminRequest) (*domain.Admin, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidPassword
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	admin := &domain.Admin{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, admin); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		s.log.Error("failed to insert admin", zap.Error(err))
		return nil, err
	}

	s.log.Info("admin created", zap.String("admin_id", admin.ID.String()))
	return admin, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Admin, error) {
	items, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	admins := make([]domain.Admin, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		admins = append(admins, *item)
	}
	return admins, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	adminID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	admin, err := s.repo.FindByID(ctx, s.db, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}
	return admin, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateAdminRequest) (*domain.Admin, error) {
	adminID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	admin, err := s.repo.FindByID(ctx, s.db, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}

	fields := map[string]any{}
	if req.Email != nil {
		email, err := domain.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if email != admin.Email {
			other, err := s.repo.FindByEmail(ctx, s.db, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != admin.ID {
				return nil, domain.ErrEmailTaken
			}
			fields["email"] = email
		}
	}
	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return nil, domain.ErrInvalidPassword
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}
	if len(fields) == 0 {
		return admin, nil
	}
	fields["updated_at"] = s.clock.Now()

	if err := s.repo.Updates(ctx, s.db, adminID, fields); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return s.GetByID(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteAdminRequest) (repository.DeleteOutcome, error) {
	adminID, err := parseID(req.ID)
	if err != nil {
		return "", err
	}

	outcome, err := repository.Delete[domain.Admin](ctx, s.db, s.repo, adminID, req.Hard, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}

	s.metrics.RecordDeletion(ctx, "admin", req.Hard)
	return outcome, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
