package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/internal/settings/domain"
	settingsrepo "github.com/smallbiznis/hynox/internal/settings/repository"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Settings{}))

	return New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		Repo:     settingsrepo.Provide(),
		Defaults: config.NewStaticDefaultsHolder(config.BuiltinDefaults()),
	})
}

func TestGetSeedsWellKnownKeys(t *testing.T) {
	svc := newTestService(t)

	values, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 18, values[domain.KeyDefaultTax])
	assert.Equal(t, "INR", values[domain.KeyDefaultCurrency])
}

func TestMergeKeepsUnrelatedKeys(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Merge(ctx, map[string]any{"invoiceFooter": "Thank you", "defaultCurrency": "USD"})
	require.NoError(t, err)

	values, err := svc.Merge(ctx, map[string]any{"invoiceFooter": nil})
	require.NoError(t, err)

	assert.Equal(t, "USD", values[domain.KeyDefaultCurrency])
	assert.EqualValues(t, 18, values[domain.KeyDefaultTax])
	assert.NotContains(t, values, "invoiceFooter")

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, values, stored)
}
