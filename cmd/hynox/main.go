package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/internal/migration"
	"github.com/smallbiznis/hynox/internal/observability"
	"github.com/smallbiznis/hynox/internal/server"
	"github.com/smallbiznis/hynox/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
