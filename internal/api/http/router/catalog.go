package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerCatalogRoutes(
	api fiber.Router,
	h *handler.CatalogHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	services := api.Group("/services", authRequired)

	services.Get("/", requirePerm(authorize.ResourceService, authorize.ActionRead), h.List)
	services.Post("/", requirePerm(authorize.ResourceService, authorize.ActionCreate), h.Create)

	s := services.Group("/:id")
	s.Get("/", requirePerm(authorize.ResourceService, authorize.ActionRead), h.Get)
	s.Patch("/", requirePerm(authorize.ResourceService, authorize.ActionUpdate), h.Update)
	s.Delete("/", requirePerm(authorize.ResourceService, authorize.ActionDelete), h.Delete)
}
