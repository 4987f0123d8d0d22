package components

import (
	"cargo-backoffice/internal/handler"
	"cargo-backoffice/internal/handler/api"
	"cargo-backoffice/internal/handler/middleware"
	"cargo-backoffice/internal/pkg/config"
	"cargo-backoffice/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewManifestHandler,
		NewScanHandler,
		api.NewQueueHandler,
		NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewScanHandler(attacher commands.ScanAttacher, cfg config.Config) *api.ScanHandler {
	return api.NewScanHandler(attacher, cfg.Scan.AttachTimeout)
}

func NewAuthMiddleware(cfg config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(cfg.JWT)
}
