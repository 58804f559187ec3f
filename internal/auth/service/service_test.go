package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	adminrepo "github.com/smallbiznis/hynox/internal/admin/repository"
	adminservice "github.com/smallbiznis/hynox/internal/admin/service"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
	"github.com/smallbiznis/hynox/internal/auth/password"
	"github.com/smallbiznis/hynox/internal/auth/token"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/smallbiznis/hynox/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	auth   authdomain.Service
	admins admindomain.Service
	clock  *clock.FakeClock
	conn   *gorm.DB
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(&admindomain.Admin{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	repo := adminrepo.Provide()
	issuer, err := token.NewIssuer(config.Config{
		Environment:   "production",
		AuthJWTSecret: "test-secret",
		AuthTokenTTL:  time.Hour,
	}, clk, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}

	admins := adminservice.New(adminservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repo,
	})
	return fixture{
		auth:   New(Params{DB: conn, Log: zap.NewNop(), Admins: repo, Tokens: issuer}),
		admins: admins,
		clock:  clk,
		conn:   conn,
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.admins.Create(ctx, admindomain.CreateAdminRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	_, err := f.auth.Login(ctx, authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = f.auth.Login(ctx, authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), authdomain.LoginRequest{Email: "alice@example.com"})
	if err != authdomain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestLoginTokenAuthenticates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.admins.Create(ctx, admindomain.CreateAdminRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	result, err := f.auth.Login(ctx, authdomain.LoginRequest{
		Email:    " Alice@Example.com ",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token")
	}
	if !result.ExpiresAt.Equal(f.clock.Now().Add(time.Hour)) {
		t.Fatalf("unexpected expiry %s", result.ExpiresAt)
	}

	principal, err := f.auth.Authenticate(ctx, result.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if principal.AdminID != admin.ID || principal.Email != "alice@example.com" {
		t.Fatalf("unexpected principal %+v", principal)
	}

	f.clock.Advance(2 * time.Hour)
	if _, err := f.auth.Authenticate(ctx, result.Token); err != authdomain.ErrUnauthorized {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestDeletedAdminCannotLoginOrAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.admins.Create(ctx, admindomain.CreateAdminRequest{
		Email:    "bob@example.com",
		Password: "strong-password",
	})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	result, err := f.auth.Login(ctx, authdomain.LoginRequest{Email: "bob@example.com", Password: "strong-password"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	outcome, err := f.admins.Delete(ctx, admindomain.DeleteAdminRequest{ID: admin.ID.String()})
	if err != nil || outcome != repository.SoftDeleted {
		t.Fatalf("expected soft delete, got %v %v", outcome, err)
	}

	if _, err := f.auth.Authenticate(ctx, result.Token); err != authdomain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.auth.Login(ctx, authdomain.LoginRequest{Email: "bob@example.com", Password: "strong-password"}); err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Authenticate(context.Background(), "  "); err != authdomain.ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestLoginUpgradesOutdatedHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.admins.Create(ctx, admindomain.CreateAdminRequest{
		Email:    "carol@example.com",
		Password: "legacy-password",
	})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	weak := password.Params{Memory: 8 * 1024, Time: 1, Threads: 1, SaltLen: 8, KeyLen: 16}
	legacy, err := weak.Hash("legacy-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if err := f.conn.Model(&admindomain.Admin{}).Where("id = ?", created.ID).Update("password", legacy).Error; err != nil {
		t.Fatalf("failed to store legacy hash: %v", err)
	}

	if _, err := f.auth.Login(ctx, authdomain.LoginRequest{Email: "carol@example.com", Password: "legacy-password"}); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}

	var stored admindomain.Admin
	if err := f.conn.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("failed to reload admin: %v", err)
	}
	if password.NeedsRehash(stored.PasswordHash) {
		t.Fatalf("expected hash to be upgraded, got %s", stored.PasswordHash)
	}
	if !password.Verify("legacy-password", stored.PasswordHash) {
		t.Fatalf("upgraded hash does not verify")
	}
}
