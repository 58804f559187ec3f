package seed

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	"github.com/smallbiznis/hynox/internal/auth/password"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureBootstrapAdminIsIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&admindomain.Admin{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	cfg := config.BootstrapConfig{AdminEmail: " Root@Example.com ", AdminPassword: "changeme"}
	ctx := context.Background()
	require.NoError(t, EnsureBootstrapAdmin(ctx, conn, node, clk, cfg, zap.NewNop()))
	require.NoError(t, EnsureBootstrapAdmin(ctx, conn, node, clk, cfg, zap.NewNop()))

	var admins []admindomain.Admin
	require.NoError(t, conn.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "root@example.com", admins[0].Email)
	assert.True(t, password.Verify("changeme", admins[0].PasswordHash))
}

func TestEnsureBootstrapAdminSkipsWithoutCredentials(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&admindomain.Admin{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	err = EnsureBootstrapAdmin(context.Background(), conn, node, clock.NewSystemClock(), config.BootstrapConfig{AdminEmail: "root@example.com"}, zap.NewNop())
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&admindomain.Admin{}).Count(&count).Error)
	assert.Zero(t, count)
}
