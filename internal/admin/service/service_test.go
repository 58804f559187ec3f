package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/admin/domain"
	adminrepo "github.com/smallbiznis/hynox/internal/admin/repository"
	"github.com/smallbiznis/hynox/internal/auth/password"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Admin{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  adminrepo.Provide(),
	}), conn
}

func TestCreateAdminNormalizesAndHashes(t *testing.T) {
	svc, _ := newTestService(t)

	admin, err := svc.Create(context.Background(), domain.CreateAdminRequest{
		Email:    "  Owner@Example.COM ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", admin.Email)
	assert.NotEqual(t, "s3cret-pass", admin.PasswordHash)
	assert.True(t, password.Verify("s3cret-pass", admin.PasswordHash))

	body, err := json.Marshal(admin)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), admin.PasswordHash)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)

	_, err := svc.Create(ctx, domain.CreateAdminRequest{Email: "ops@example.com", Password: "first"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateAdminRequest{Email: "OPS@example.com", Password: "second"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	var count int64
	require.NoError(t, conn.Model(&domain.Admin{}).Where("email = ?", "ops@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateAdminValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateAdminRequest{Email: "nope", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(context.Background(), domain.CreateAdminRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestUpdateAdminRehashesPasswordOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	admin, err := svc.Create(ctx, domain.CreateAdminRequest{Email: "a@example.com", Password: "old-password"})
	require.NoError(t, err)

	newPassword := "new-password"
	updated, err := svc.Update(ctx, domain.UpdateAdminRequest{ID: admin.ID.String(), Password: &newPassword})
	require.NoError(t, err)

	assert.Equal(t, "a@example.com", updated.Email)
	assert.True(t, password.Verify(newPassword, updated.PasswordHash))
	assert.False(t, password.Verify("old-password", updated.PasswordHash))
}

func TestUpdateAdminEmailCollision(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, domain.CreateAdminRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.CreateAdminRequest{Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)

	taken := "A@example.com"
	_, err = svc.Update(ctx, domain.UpdateAdminRequest{ID: second.ID.String(), Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	same := "b@example.com"
	unchanged, err := svc.Update(ctx, domain.UpdateAdminRequest{ID: second.ID.String(), Email: &same})
	require.NoError(t, err)
	assert.True(t, second.UpdatedAt.Equal(unchanged.UpdatedAt))
}
