package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerUserRoutes(
	api fiber.Router,
	h *handler.UserHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	users := api.Group("/users", authRequired)

	users.Get("/", requirePerm(authorize.ResourceUser, authorize.ActionRead), h.List)
	users.Post("/", requirePerm(authorize.ResourceUser, authorize.ActionCreate), h.Create)

	u := users.Group("/:id")
	u.Get("/", requirePerm(authorize.ResourceUser, authorize.ActionRead), h.Get)
	u.Patch("/", requirePerm(authorize.ResourceUser, authorize.ActionUpdate), h.Update)
	u.Patch("/password", requirePerm(authorize.ResourceUser, authorize.ActionUpdate), h.ChangePassword)
	u.Delete("/", requirePerm(authorize.ResourceUser, authorize.ActionDelete), h.Delete)
}
