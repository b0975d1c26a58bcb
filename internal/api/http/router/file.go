package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerFileRoutes(
	api fiber.Router,
	h *handler.FileHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	files := api.Group("/files", authRequired)

	files.Post("/", requirePerm(authorize.ResourceFile, authorize.ActionCreate), h.Upload)
	files.Delete("/", requirePerm(authorize.ResourceFile, authorize.ActionDelete), h.Delete)
}
