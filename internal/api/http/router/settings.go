package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerSettingsRoutes(
	api fiber.Router,
	h *handler.SettingsHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	group := api.Group("/settings", authRequired)

	group.Get("/", requirePerm(authorize.ResourceSettings, authorize.ActionRead), h.Get)
	group.Put("/", requirePerm(authorize.ResourceSettings, authorize.ActionUpdate), h.Update)
}
