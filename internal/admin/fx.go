package admin

import (
	"github.com/smallbiznis/hynox/internal/admin/repository"
	"github.com/smallbiznis/hynox/internal/admin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("admin.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
