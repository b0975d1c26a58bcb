package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
)

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func deleted(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func conflict(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
}

func payloadTooLarge(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": msg})
}

func serviceUnavailable(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": msg})
}

// internalError logs the cause with request context and returns the
// generic shape; the cause never reaches the client.
func internalError(c fiber.Ctx, err error) error {
	slog.Error("request failed", "error", err, "method", c.Method(), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// invalidInput renders validator failures with their per-field messages,
// falling back to a plain 400 for anything else.
func invalidInput(c fiber.Ctx, err error) error {
	if fields, isFieldErrs := validate.AsErrors(err); isFieldErrs {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fields,
		})
	}
	return badRequest(c, err.Error())
}

// renderConstraint writes the HTTP shape for database constraint
// violations: 409 for unique conflicts, 400 for broken references.
// The second return reports whether err was one.
func renderConstraint(c fiber.Ctx, err error) (error, bool) {
	var conflictErr *database.ConflictError
	if errors.As(err, &conflictErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": conflictErr.Message,
			"field": conflictErr.Field,
		}), true
	}

	var integrityErr *database.IntegrityError
	if errors.As(err, &integrityErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": integrityErr.Message,
			"field": integrityErr.Field,
		}), true
	}

	return nil, false
}
