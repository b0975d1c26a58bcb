package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/appointment"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/auth"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/catalog"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/doctor"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

// PublicHandler serves the unauthenticated endpoints behind the clinic
// website: the booking form, portal registration and the active catalog.
type PublicHandler struct {
	appointments appointment.Service
	auth         auth.Service
	catalog      catalog.Service
	doctors      doctor.Service
	v            *validate.Validator
}

func NewPublicHandler(
	appointments appointment.Service,
	authSvc auth.Service,
	catalogSvc catalog.Service,
	doctors doctor.Service,
	v *validate.Validator,
) *PublicHandler {
	return &PublicHandler{
		appointments: appointments,
		auth:         authSvc,
		catalog:      catalogSvc,
		doctors:      doctors,
		v:            v,
	}
}

type publicBookBody struct {
	ServiceID   string    `json:"serviceId" validate:"required,uuid"`
	PatientID   *string   `json:"patientId" validate:"omitempty,uuid"`
	PatientName *string   `json:"patientName"`
	Phone       *string   `json:"phone" validate:"omitempty,phone"`
	Date        time.Time `json:"date" validate:"required"`
	Notes       *string   `json:"notes"`
}

type registerPortalBody struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	Password  string  `json:"password" validate:"required,min=8"`
}

// POST /public/appointments
func (h *PublicHandler) Book(c fiber.Ctx) error {
	var body publicBookBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	serviceID, err := uuid.Parse(body.ServiceID)
	if err != nil {
		return badRequest(c, "invalid serviceId")
	}

	req := appointment.PublicBookRequest{
		ServiceID:   serviceID,
		PatientName: body.PatientName,
		Phone:       body.Phone,
		Date:        body.Date,
		Notes:       body.Notes,
	}
	if body.PatientID != nil && *body.PatientID != "" {
		pid, err := uuid.Parse(*body.PatientID)
		if err != nil {
			return badRequest(c, "invalid patientId")
		}
		req.PatientID = &pid
	}

	appt, err := h.appointments.PublicBook(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, appt)
}

// POST /public/patients/register
func (h *PublicHandler) Register(c fiber.Ctx) error {
	var body registerPortalBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	p, err := h.auth.RegisterPortalAccount(c.Context(), auth.RegisterPortalRequest{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		Password:  body.Password,
	})
	if err != nil {
		if resp, handled := renderConstraint(c, err); handled {
			return resp
		}
		return internalError(c, err)
	}
	return created(c, p)
}

// GET /public/services
func (h *PublicHandler) Services(c fiber.Ctx) error {
	services, err := h.catalog.List(c.Context(), catalog.ListRequest{ActiveOnly: true})
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, services)
}

// GET /public/doctors
func (h *PublicHandler) Doctors(c fiber.Ctx) error {
	doctors, err := h.doctors.List(c.Context(), doctor.ListRequest{ActiveOnly: true})
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, doctors)
}
