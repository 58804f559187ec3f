package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
	"github.com/smallbiznis/hynox/internal/auth/password"
	"github.com/smallbiznis/hynox/internal/auth/token"
	"github.com/smallbiznis/hynox/internal/observability/logger"
	"github.com/smallbiznis/hynox/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Admins  admindomain.Repository
	Tokens  *token.Issuer
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	admins  admindomain.Repository
	tokens  *token.Issuer
	metrics *metrics.Metrics
}

func New(p Params) authdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("auth.service"),
		admins:  p.Admins,
		tokens:  p.Tokens,
		metrics: p.Metrics,
	}
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, authdomain.ErrMissingCredentials
	}

	email, err := admindomain.NormalizeEmail(req.Email)
	if err != nil {
		return nil, s.rejectLogin(ctx, "malformed_email")
	}

	admin, err := s.admins.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.DeletedAt != nil {
		return nil, s.rejectLogin(ctx, "unknown_admin")
	}
	if !password.Verify(req.Password, admin.PasswordHash) {
		return nil, s.rejectLogin(ctx, "wrong_password")
	}
	if password.NeedsRehash(admin.PasswordHash) {
		s.rehash(ctx, admin, req.Password)
	}

	signed, expiresAt, err := s.tokens.Issue(admin.ID.String(), admin.Email)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLogin(ctx, "success")
	logger.WithContext(ctx, s.log).Info("admin logged in", zap.String("admin_id", admin.ID.String()))

	return &authdomain.LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}

// rehash upgrades a hash made with outdated parameters. Failure only logs;
// the login itself already succeeded.
func (s *Service) rehash(ctx context.Context, admin *admindomain.Admin, plain string) {
	hashed, err := password.Hash(plain)
	if err == nil {
		err = s.admins.Updates(ctx, s.db, admin.ID, map[string]any{"password": hashed})
	}
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to upgrade password hash", zap.String("admin_id", admin.ID.String()), zap.Error(err))
	}
}

func (s *Service) Authenticate(ctx context.Context, raw string) (*authdomain.Principal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, authdomain.ErrMissingToken
	}

	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, authdomain.ErrUnauthorized
	}
	id, err := snowflake.ParseString(claims.ID)
	if err != nil || id == 0 {
		return nil, authdomain.ErrUnauthorized
	}

	admin, err := s.admins.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.DeletedAt != nil {
		return nil, authdomain.ErrUnauthorized
	}

	return &authdomain.Principal{AdminID: admin.ID, Email: admin.Email}, nil
}

func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *Service) rejectLogin(ctx context.Context, reason string) error {
	s.metrics.RecordLogin(ctx, "failure")
	logger.WithContext(ctx, s.log).Info("login rejected", zap.String("reason", reason))
	return authdomain.ErrInvalidCredentials
}
