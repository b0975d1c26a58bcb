package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerClinicPageRoutes(
	api fiber.Router,
	h *handler.ClinicPageHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	clinics := api.Group("/specialty-clinics", authRequired)

	clinics.Get("/", requirePerm(authorize.ResourceSpecialtyClinic, authorize.ActionRead), h.List)
	clinics.Post("/", requirePerm(authorize.ResourceSpecialtyClinic, authorize.ActionCreate), h.Create)

	sc := clinics.Group("/:id")
	sc.Get("/", requirePerm(authorize.ResourceSpecialtyClinic, authorize.ActionRead), h.Get)
	sc.Patch("/", requirePerm(authorize.ResourceSpecialtyClinic, authorize.ActionUpdate), h.Update)
	sc.Delete("/", requirePerm(authorize.ResourceSpecialtyClinic, authorize.ActionDelete), h.Delete)
}
