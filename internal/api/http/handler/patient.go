package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/patient"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type PatientHandler struct {
	svc patient.Service
	v   *validate.Validator
}

func NewPatientHandler(svc patient.Service, v *validate.Validator) *PatientHandler {
	return &PatientHandler{svc: svc, v: v}
}

type createPatientBody struct {
	FirstName   string     `json:"firstName" validate:"required"`
	LastName    string     `json:"lastName" validate:"required"`
	Phone       *string    `json:"phone" validate:"omitempty,phone"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Notes       *string    `json:"notes"`
	ServiceIDs  []string   `json:"serviceIds" validate:"omitempty,dive,uuid"`
}

type updatePatientBody struct {
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	Phone       *string    `json:"phone" validate:"omitempty,phone"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Notes       *string    `json:"notes"`
	ServiceIDs  *[]string  `json:"serviceIds" validate:"omitempty,dive,uuid"`
}

// GET /api/v1/patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	var q struct {
		Search  string `query:"search"`
		Page    int    `query:"page"`
		PerPage int    `query:"perPage"`
	}
	_ = c.Bind().Query(&q)

	result, err := h.svc.List(c.Context(), patient.ListRequest{
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, result)
}

// GET /api/v1/patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	p, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// POST /api/v1/patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	var body createPatientBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	serviceIDs, err := parseUUIDs(body.ServiceIDs)
	if err != nil {
		return badRequest(c, "invalid serviceIds")
	}

	p, err := h.svc.Create(c.Context(), patient.CreateRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Phone:       body.Phone,
		Email:       body.Email,
		DateOfBirth: body.DateOfBirth,
		Notes:       body.Notes,
		ServiceIDs:  serviceIDs,
	})
	if err != nil {
		return mapPatientError(c, err)
	}
	return created(c, p)
}

// PATCH /api/v1/patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	var body updatePatientBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	req := patient.UpdateRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Phone:       body.Phone,
		Email:       body.Email,
		DateOfBirth: body.DateOfBirth,
		Notes:       body.Notes,
	}
	// serviceIds present (even empty) reconciles the usage set; absent
	// leaves it alone.
	if body.ServiceIDs != nil {
		serviceIDs, err := parseUUIDs(*body.ServiceIDs)
		if err != nil {
			return badRequest(c, "invalid serviceIds")
		}
		req.ServiceIDs = &serviceIDs
	}

	p, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// DELETE /api/v1/patients/:id
func (h *PatientHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapPatientError(c, err)
	}
	return deleted(c)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parseUUIDs(in []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(in))
	for _, s := range in {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func mapPatientError(c fiber.Ctx, err error) error {
	if resp, handled := renderConstraint(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrServiceUnknown):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}
