package session

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

const CtxKeyClaims = "session.claims"

// TokenFromRequest pulls the session token from the cookie, falling
// back to a Bearer Authorization header for non-browser clients.
func TokenFromRequest(c fiber.Ctx, cookieName string) string {
	if tok := c.Cookies(cookieName); tok != "" {
		return tok
	}
	h := c.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	v := c.Locals(CtxKeyClaims)
	if v == nil {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}
