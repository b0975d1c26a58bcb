package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/auth"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
)

type AuthHandler struct {
	svc auth.Service
	v   *validate.Validator
	cfg *config.Config
}

func NewAuthHandler(svc auth.Service, v *validate.Validator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, v: v, cfg: cfg}
}

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body loginBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	res, err := h.svc.Login(c.Context(), auth.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	h.setSessionCookie(c, res.Token, res.Claims.ExpiresAt)

	return ok(c, fiber.Map{
		"token":     res.Token,
		"expiresAt": res.Claims.ExpiresAt,
		"user":      res.User,
	})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, valid := session.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	if err := h.svc.Logout(c.Context(), claims); err != nil {
		return internalError(c, err)
	}

	h.clearSessionCookie(c)
	return noContent(c)
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	claims, valid := session.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	u, err := h.svc.Me(c.Context(), claims.UserID)
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, u)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cfg.Session.CookieDomain,
		Expires:  expires,
		Secure:   h.cfg.Session.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cfg.Session.CookieDomain,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cfg.Session.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, auth.ErrUserNotFound):
		return unauthorized(c)
	default:
		return internalError(c, err)
	}
}
