package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
)

// RequirePermission checks whether the authenticated user's role grants
// the given action on the given resource. Must run after AuthRequired.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := session.ClaimsFromFiber(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		subject := authorize.RoleSubject(claims.Role)
		if subject == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		if err := auth.MustEnforce(c.Context(), subject, resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
			}
			return err
		}

		return c.Next()
	}
}
