package handler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/appointment"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type AppointmentHandler struct {
	svc appointment.Service
	v   *validate.Validator
}

func NewAppointmentHandler(svc appointment.Service, v *validate.Validator) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, v: v}
}

type createAppointmentBody struct {
	PatientID   *string   `json:"patientId" validate:"omitempty,uuid"`
	PatientName *string   `json:"patientName"`
	ServiceID   string    `json:"serviceId" validate:"required,uuid"`
	StaffID     *string   `json:"staffId" validate:"omitempty,uuid"`
	Date        time.Time `json:"date" validate:"required"`
	Status      *string   `json:"status" validate:"omitempty,oneof=BOOKED COMPLETED CANCELLED NO_SHOW"`
	Notes       *string   `json:"notes"`
}

type updateAppointmentBody struct {
	PatientID   *string    `json:"patientId"`
	PatientName *string    `json:"patientName"`
	ServiceID   *string    `json:"serviceId" validate:"omitempty,uuid"`
	StaffID     *string    `json:"staffId"`
	Date        *time.Time `json:"date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=BOOKED COMPLETED CANCELLED NO_SHOW"`
	Notes       *string    `json:"notes"`
}

// GET /api/v1/appointments
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	var q struct {
		Status    string `query:"status"`
		PatientID string `query:"patientId"`
		ServiceID string `query:"serviceId"`
		From      string `query:"from"`
		To        string `query:"to"`
		Limit     int    `query:"limit"`
	}
	_ = c.Bind().Query(&q)

	req := appointment.ListRequest{Limit: q.Limit}
	if q.Status != "" {
		req.Status = &q.Status
	}
	if q.PatientID != "" {
		id, err := uuid.Parse(q.PatientID)
		if err != nil {
			return badRequest(c, "invalid patientId")
		}
		req.PatientID = &id
	}
	if q.ServiceID != "" {
		id, err := uuid.Parse(q.ServiceID)
		if err != nil {
			return badRequest(c, "invalid serviceId")
		}
		req.ServiceID = &id
	}
	if q.From != "" {
		t, err := parseDateParam(q.From, false)
		if err != nil {
			return badRequest(c, "invalid from date")
		}
		req.From = t
	}
	if q.To != "" {
		t, err := parseDateParam(q.To, true)
		if err != nil {
			return badRequest(c, "invalid to date")
		}
		req.To = t
	}

	appts, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appts)
}

// GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	appt, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c fiber.Ctx) error {
	var body createAppointmentBody
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

	req := appointment.CreateRequest{
		PatientName: body.PatientName,
		ServiceID:   serviceID,
		Date:        body.Date,
		Status:      body.Status,
		Notes:       body.Notes,
	}
	if body.PatientID != nil && *body.PatientID != "" {
		id, err := uuid.Parse(*body.PatientID)
		if err != nil {
			return badRequest(c, "invalid patientId")
		}
		req.PatientID = &id
	}
	if body.StaffID != nil && *body.StaffID != "" {
		id, err := uuid.Parse(*body.StaffID)
		if err != nil {
			return badRequest(c, "invalid staffId")
		}
		req.StaffID = &id
	}

	appt, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, appt)
}

// PATCH /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body updateAppointmentBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	// A patientId or staffId sent as null means unlink, which is not the
	// same as leaving the key out. Probe the raw body for key presence.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &keys); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := appointment.UpdateRequest{
		PatientName: body.PatientName,
		Date:        body.Date,
		Status:      body.Status,
		Notes:       body.Notes,
	}
	if _, present := keys["patientId"]; present {
		req.PatientIDSet = true
		if body.PatientID != nil && *body.PatientID != "" {
			pid, err := uuid.Parse(*body.PatientID)
			if err != nil {
				return badRequest(c, "invalid patientId")
			}
			req.PatientID = &pid
		}
	}
	if _, present := keys["staffId"]; present {
		req.StaffIDSet = true
		if body.StaffID != nil && *body.StaffID != "" {
			sid, err := uuid.Parse(*body.StaffID)
			if err != nil {
				return badRequest(c, "invalid staffId")
			}
			req.StaffID = &sid
		}
	}
	if body.ServiceID != nil {
		sid, err := uuid.Parse(*body.ServiceID)
		if err != nil {
			return badRequest(c, "invalid serviceId")
		}
		req.ServiceID = &sid
	}

	appt, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapAppointmentError(c, err)
	}
	return deleted(c)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseDateParam accepts RFC 3339 timestamps and plain dates. A plain
// date used as a range end covers the whole day.
func parseDateParam(s string, endOfDay bool) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	if resp, handled := renderConstraint(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrPatientIdentityMissing),
		errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, appointment.ErrServiceNotFound),
		errors.Is(err, appointment.ErrPatientNotFound),
		errors.Is(err, appointment.ErrStaffNotFound):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}
