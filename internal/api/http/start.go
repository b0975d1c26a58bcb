package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/router"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/app"
)

// Start assembles the fx graph and runs the HTTP server until shutdown.
func Start(cfg *config.Config, shutdownTimeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module,

		// Invoking *fiber.App forces its construction, which registers
		// the lifecycle hooks that listen and shut down.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(shutdownTimeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	).Run()
}
