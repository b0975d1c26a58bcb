package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
)

func (r *Router) registerBlogRoutes(
	api fiber.Router,
	h *handler.BlogHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	blogs := api.Group("/blogs", authRequired)

	blogs.Get("/", requirePerm(authorize.ResourceBlog, authorize.ActionRead), h.List)
	blogs.Post("/", requirePerm(authorize.ResourceBlog, authorize.ActionCreate), h.Create)

	b := blogs.Group("/:id")
	b.Get("/", requirePerm(authorize.ResourceBlog, authorize.ActionRead), h.Get)
	b.Patch("/", requirePerm(authorize.ResourceBlog, authorize.ActionUpdate), h.Update)
	b.Delete("/", requirePerm(authorize.ResourceBlog, authorize.ActionDelete), h.Delete)
}
