package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/company/domain"
	companyrepo "github.com/smallbiznis/hynox/internal/company/repository"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, defaults config.Defaults) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.CompanyInfo{}))

	return New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)),
		Repo:     companyrepo.Provide(),
		Defaults: config.NewStaticDefaultsHolder(defaults),
	}), conn
}

func TestGetSeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, config.BuiltinDefaults())

	info, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "the black crest", info.Name)
	assert.Equal(t, "33CGZPV6446G1ZK", info.GSTNumber)
	assert.Equal(t, "FDRL0002315", info.IFSC)

	_, err = svc.Get(ctx)
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&domain.CompanyInfo{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertMergesProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, config.BuiltinDefaults())

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	upi := "blackcrest@upi"
	phone := " +91 99999 00000 "
	info, err := svc.Upsert(ctx, domain.UpsertRequest{UPI: &upi, Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "the black crest", info.Name)
	assert.Equal(t, "blackcrest@upi", info.UPI)
	assert.Equal(t, "+91 99999 00000", info.Phone)

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, info.UPI, stored.UPI)
	assert.Equal(t, info.Phone, stored.Phone)
}

func TestUpsertWithoutPriorReadUsesConfiguredDefaults(t *testing.T) {
	defaults := config.BuiltinDefaults()
	defaults.Company.Name = "Northwind"
	svc, _ := newTestService(t, defaults)

	branch := "Coimbatore"
	info, err := svc.Upsert(context.Background(), domain.UpsertRequest{Branch: &branch})
	require.NoError(t, err)
	assert.Equal(t, "Northwind", info.Name)
	assert.Equal(t, "Coimbatore", info.Branch)

	empty := "  "
	_, err = svc.Upsert(context.Background(), domain.UpsertRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}
