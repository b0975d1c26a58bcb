package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
)

// AuthRequired verifies the session token from the cookie or Authorization
// header and checks the session is still live in Redis.
// On success, stores *session.Claims in c.Locals(session.CtxKeyClaims).
// Browser requests without a valid session are redirected to the login
// page; API clients get a 401 instead.
func AuthRequired(mgr *session.Manager, cfg *config.Config) fiber.Handler {
	loginPath := cfg.Session.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}

	return func(c fiber.Ctx) error {
		token := session.TokenFromRequest(c, cfg.Session.CookieName)
		if token == "" {
			return rejectUnauthenticated(c, loginPath)
		}

		claims, err := mgr.Verify(c.Context(), token)
		if err != nil {
			return rejectUnauthenticated(c, loginPath)
		}

		c.Locals(session.CtxKeyClaims, claims)
		return c.Next()
	}
}

func rejectUnauthenticated(c fiber.Ctx, loginPath string) error {
	if strings.Contains(c.Get(fiber.HeaderAccept), "text/html") {
		return c.Redirect().To(loginPath)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
