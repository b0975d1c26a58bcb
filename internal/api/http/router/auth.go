package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/middleware"
)

func (r *Router) registerAuthRoutes(api fiber.Router, h *handler.AuthHandler, authRequired fiber.Handler) {
	group := api.Group("/auth")

	group.Post("/login", middleware.NewLoginLimiter(r.p.Redis, r.p.Cfg), h.Login)
	group.Post("/logout", authRequired, h.Logout)
	group.Get("/me", authRequired, h.Me)
}
