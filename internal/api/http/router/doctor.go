package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerDoctorRoutes(
	api fiber.Router,
	h *handler.DoctorHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	doctors := api.Group("/doctors", authRequired)

	doctors.Get("/", requirePerm(authorize.ResourceDoctor, authorize.ActionRead), h.List)
	doctors.Post("/", requirePerm(authorize.ResourceDoctor, authorize.ActionCreate), h.Create)

	d := doctors.Group("/:id")
	d.Get("/", requirePerm(authorize.ResourceDoctor, authorize.ActionRead), h.Get)
	d.Patch("/", requirePerm(authorize.ResourceDoctor, authorize.ActionUpdate), h.Update)
	d.Delete("/", requirePerm(authorize.ResourceDoctor, authorize.ActionDelete), h.Delete)
}
