package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/clinicpage"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type ClinicPageHandler struct {
	svc clinicpage.Service
	v   *validate.Validator
}

func NewClinicPageHandler(svc clinicpage.Service, v *validate.Validator) *ClinicPageHandler {
	return &ClinicPageHandler{svc: svc, v: v}
}

type createClinicPageBody struct {
	Name        string  `json:"name" validate:"required"`
	Title       *string `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Priority    *int    `json:"priority"`
	Active      *bool   `json:"active"`
}

type updateClinicPageBody struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Priority    *int    `json:"priority"`
	Active      *bool   `json:"active"`
}

// GET /api/v1/specialty-clinics
func (h *ClinicPageHandler) List(c fiber.Ctx) error {
	var q struct {
		Active bool `query:"active"`
	}
	_ = c.Bind().Query(&q)

	clinics, err := h.svc.List(c.Context(), clinicpage.ListRequest{ActiveOnly: q.Active})
	if err != nil {
		return mapClinicPageError(c, err)
	}
	return ok(c, clinics)
}

// GET /api/v1/specialty-clinics/:id
func (h *ClinicPageHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid specialty clinic id")
	}

	clinic, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapClinicPageError(c, err)
	}
	return ok(c, clinic)
}

// POST /api/v1/specialty-clinics
func (h *ClinicPageHandler) Create(c fiber.Ctx) error {
	var body createClinicPageBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	clinic, err := h.svc.Create(c.Context(), clinicpage.CreateRequest{
		Name:        body.Name,
		Title:       body.Title,
		Description: body.Description,
		Image:       body.Image,
		Priority:    body.Priority,
		Active:      body.Active,
	})
	if err != nil {
		return mapClinicPageError(c, err)
	}
	return created(c, clinic)
}

// PATCH /api/v1/specialty-clinics/:id
func (h *ClinicPageHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid specialty clinic id")
	}

	var body updateClinicPageBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	clinic, err := h.svc.Update(c.Context(), id, clinicpage.UpdateRequest{
		Name:        body.Name,
		Title:       body.Title,
		Description: body.Description,
		Image:       body.Image,
		Priority:    body.Priority,
		Active:      body.Active,
	})
	if err != nil {
		return mapClinicPageError(c, err)
	}
	return ok(c, clinic)
}

// DELETE /api/v1/specialty-clinics/:id
func (h *ClinicPageHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid specialty clinic id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapClinicPageError(c, err)
	}
	return deleted(c)
}

func mapClinicPageError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, clinicpage.ErrNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c, err)
	}
}
