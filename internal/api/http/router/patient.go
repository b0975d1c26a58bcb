package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	h *handler.PatientHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	patients := api.Group("/patients", authRequired)

	patients.Get("/", requirePerm(authorize.ResourcePatient, authorize.ActionRead), h.List)
	patients.Post("/", requirePerm(authorize.ResourcePatient, authorize.ActionCreate), h.Create)

	p := patients.Group("/:id")
	p.Get("/", requirePerm(authorize.ResourcePatient, authorize.ActionRead), h.Get)
	p.Patch("/", requirePerm(authorize.ResourcePatient, authorize.ActionUpdate), h.Update)
	p.Delete("/", requirePerm(authorize.ResourcePatient, authorize.ActionDelete), h.Delete)
}
