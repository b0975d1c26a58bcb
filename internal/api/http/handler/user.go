package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/user"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type UserHandler struct {
	svc user.Service
	v   *validate.Validator
}

func NewUserHandler(svc user.Service, v *validate.Validator) *UserHandler {
	return &UserHandler{svc: svc, v: v}
}

type createUserBody struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       *string `json:"name"`
	Role       string  `json:"role" validate:"required,oneof=ADMIN STAFF"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
	SendInvite bool    `json:"sendInvite"`
}

type updateUserBody struct {
	Name *string `json:"name"`
	Role *string `json:"role" validate:"omitempty,oneof=ADMIN STAFF"`
}

type changePasswordBody struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// GET /api/v1/users
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.svc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, users)
}

// GET /api/v1/users/:id
func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	u, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// POST /api/v1/users
func (h *UserHandler) Create(c fiber.Ctx) error {
	var body createUserBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Role = strings.ToUpper(strings.TrimSpace(body.Role))
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	res, err := h.svc.Create(c.Context(), user.CreateRequest{
		Email:      body.Email,
		Name:       body.Name,
		Role:       body.Role,
		Password:   body.Password,
		SendInvite: body.SendInvite,
	})
	if err != nil {
		return mapUserError(c, err)
	}

	data := fiber.Map{"user": res.User}
	// The generated password is shown exactly once, at creation time.
	if res.TempPassword != "" {
		data["tempPassword"] = res.TempPassword
	}
	return created(c, data)
}

// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body updateUserBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Role != nil {
		upper := strings.ToUpper(strings.TrimSpace(*body.Role))
		body.Role = &upper
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	u, err := h.svc.Update(c.Context(), id, user.UpdateRequest{
		Name: body.Name,
		Role: body.Role,
	})
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// PATCH /api/v1/users/:id/password
func (h *UserHandler) ChangePassword(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body changePasswordBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	if err := h.svc.ChangePassword(c.Context(), id, body.Password); err != nil {
		return mapUserError(c, err)
	}
	return ok(c, fiber.Map{"ok": true})
}

// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapUserError(c, err)
	}
	return deleted(c)
}

func mapUserError(c fiber.Ctx, err error) error {
	if resp, handled := renderConstraint(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, user.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, user.ErrInvalidRole):
		return badRequest(c, err.Error())
	case errors.Is(err, user.ErrLastAdmin):
		return conflict(c, err.Error())
	default:
		return internalError(c, err)
	}
}
