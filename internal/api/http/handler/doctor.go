package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/doctor"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type DoctorHandler struct {
	svc doctor.Service
	v   *validate.Validator
}

func NewDoctorHandler(svc doctor.Service, v *validate.Validator) *DoctorHandler {
	return &DoctorHandler{svc: svc, v: v}
}

type createDoctorBody struct {
	FirstName       string   `json:"firstName" validate:"required"`
	LastName        string   `json:"lastName" validate:"required"`
	Title           *string  `json:"title"`
	Specialty       *string  `json:"specialty"`
	ShortBio        *string  `json:"shortBio"`
	LongBio         *string  `json:"longBio"`
	Email           *string  `json:"email" validate:"omitempty,email"`
	Phone           *string  `json:"phone" validate:"omitempty,phone"`
	YearsExperience *int     `json:"yearsExperience" validate:"omitempty,min=0"`
	Priority        *int     `json:"priority"`
	Photo           *string  `json:"photo"`
	Gallery         []string `json:"gallery"`
	Active          *bool    `json:"active"`
	Featured        *bool    `json:"featured"`
}

type updateDoctorBody struct {
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	Title           *string   `json:"title"`
	Specialty       *string   `json:"specialty"`
	ShortBio        *string   `json:"shortBio"`
	LongBio         *string   `json:"longBio"`
	Email           *string   `json:"email" validate:"omitempty,email"`
	Phone           *string   `json:"phone" validate:"omitempty,phone"`
	YearsExperience *int      `json:"yearsExperience" validate:"omitempty,min=0"`
	Priority        *int      `json:"priority"`
	Photo           *string   `json:"photo"`
	Gallery         *[]string `json:"gallery"`
	Active          *bool     `json:"active"`
	Featured        *bool     `json:"featured"`
}

// GET /api/v1/doctors
func (h *DoctorHandler) List(c fiber.Ctx) error {
	var q struct {
		Active   bool `query:"active"`
		Featured bool `query:"featured"`
	}
	_ = c.Bind().Query(&q)

	doctors, err := h.svc.List(c.Context(), doctor.ListRequest{
		ActiveOnly:   q.Active,
		FeaturedOnly: q.Featured,
	})
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, doctors)
}

// GET /api/v1/doctors/:id
func (h *DoctorHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	d, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, d)
}

// POST /api/v1/doctors
func (h *DoctorHandler) Create(c fiber.Ctx) error {
	var body createDoctorBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	d, err := h.svc.Create(c.Context(), doctor.CreateRequest{
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Title:           body.Title,
		Specialty:       body.Specialty,
		ShortBio:        body.ShortBio,
		LongBio:         body.LongBio,
		Email:           body.Email,
		Phone:           body.Phone,
		YearsExperience: body.YearsExperience,
		Priority:        body.Priority,
		Photo:           body.Photo,
		Gallery:         body.Gallery,
		Active:          body.Active,
		Featured:        body.Featured,
	})
	if err != nil {
		return mapDoctorError(c, err)
	}
	return created(c, d)
}

// PATCH /api/v1/doctors/:id
func (h *DoctorHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	var body updateDoctorBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	d, err := h.svc.Update(c.Context(), id, doctor.UpdateRequest{
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Title:           body.Title,
		Specialty:       body.Specialty,
		ShortBio:        body.ShortBio,
		LongBio:         body.LongBio,
		Email:           body.Email,
		Phone:           body.Phone,
		YearsExperience: body.YearsExperience,
		Priority:        body.Priority,
		Photo:           body.Photo,
		Gallery:         body.Gallery,
		Active:          body.Active,
		Featured:        body.Featured,
	})
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, d)
}

// DELETE /api/v1/doctors/:id
func (h *DoctorHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapDoctorError(c, err)
	}
	return deleted(c)
}

func mapDoctorError(c fiber.Ctx, err error) error {
	if resp, handled := renderConstraint(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, doctor.ErrNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c, err)
	}
}
