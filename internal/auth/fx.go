package auth

import (
	"github.com/smallbiznis/hynox/internal/auth/service"
	"github.com/smallbiznis/hynox/internal/auth/session"
	"github.com/smallbiznis/hynox/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(token.NewIssuer),
	fx.Provide(service.New),
	session.Module,
)
