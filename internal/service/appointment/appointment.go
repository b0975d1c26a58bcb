package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ListRequest struct {
	Status    *string
	PatientID *uuid.UUID
	ServiceID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Limit     int
}

type CreateRequest struct {
	PatientID   *uuid.UUID
	PatientName *string
	ServiceID   uuid.UUID
	StaffID     *uuid.UUID
	Date        time.Time
	Status      *string
	Notes       *string
}

// UpdateRequest carries partial updates. PatientIDSet distinguishes a
// patientId that was explicitly sent as null/empty (unlink, fall back to
// patientName) from one that was absent; StaffIDSet works the same way
// for unassigning staff.
type UpdateRequest struct {
	PatientIDSet bool
	PatientID    *uuid.UUID
	PatientName  *string
	ServiceID    *uuid.UUID
	StaffIDSet   bool
	StaffID      *uuid.UUID
	Date         *time.Time
	Status       *string
	Notes        *string
}

type PublicBookRequest struct {
	ServiceID   uuid.UUID
	PatientID   *uuid.UUID
	PatientName *string
	Phone       *string
	Date        time.Time
	Notes       *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Create(ctx context.Context, req CreateRequest) (*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PublicBook(ctx context.Context, req PublicBookRequest) (*model.Appointment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

const (
	defaultListLimit = 100
	maxListLimit     = 200
)

type appointmentService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &appointmentService{db: db}
}

func (s *appointmentService) List(ctx context.Context, req ListRequest) ([]*model.Appointment, error) {
	limit := req.Limit
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	q := s.db.WithContext(ctx).
		Preload("Patient").
		Preload("Service").
		Preload("Staff")

	if req.Status != nil {
		status := model.AppointmentStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status = ?", status)
	}
	if req.PatientID != nil {
		q = q.Where("patient_id = ?", *req.PatientID)
	}
	if req.ServiceID != nil {
		q = q.Where("service_id = ?", *req.ServiceID)
	}
	if req.From != nil {
		q = q.Where("date >= ?", *req.From)
	}
	if req.To != nil {
		q = q.Where("date <= ?", *req.To)
	}

	var appts []*model.Appointment
	if err := q.Order("date DESC").Limit(limit).Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	for _, appt := range appts {
		decorate(appt)
	}
	return appts, nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Preload("Service").
		Preload("Staff").
		First(&appt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return decorate(&appt), nil
}

func (s *appointmentService) Create(ctx context.Context, req CreateRequest) (*model.Appointment, error) {
	patientID, guestName, err := resolveIdentity(req.PatientID, req.PatientName)
	if err != nil {
		return nil, err
	}

	status := model.AppointmentBooked
	if req.Status != nil && *req.Status != "" {
		status = model.AppointmentStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	if err := s.requireService(ctx, req.ServiceID); err != nil {
		return nil, err
	}
	if patientID != nil {
		if err := s.requirePatient(ctx, *patientID); err != nil {
			return nil, err
		}
	}
	if req.StaffID != nil {
		if err := s.requireStaff(ctx, *req.StaffID); err != nil {
			return nil, err
		}
	}

	appt := model.Appointment{
		ServiceID:         req.ServiceID,
		PatientID:         patientID,
		CustomPatientName: guestName,
		StaffID:           req.StaffID,
		Date:              req.Date,
		Status:            status,
	}
	if req.Notes != nil {
		appt.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.db.WithContext(ctx).Create(&appt).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return s.Get(ctx, appt.ID)
}

func (s *appointmentService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Appointment, error) {
	var appt model.Appointment
	if err := s.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	// A supplied registered patient wins and clears any guest name. An
	// explicitly cleared or absent patientId switches to the guest name
	// when one is given; otherwise identity stays as stored.
	if req.PatientIDSet && req.PatientID != nil {
		if err := s.requirePatient(ctx, *req.PatientID); err != nil {
			return nil, err
		}
		appt.PatientID = req.PatientID
		appt.CustomPatientName = nil
	} else if name, ok := trimmedName(req.PatientName); ok {
		appt.PatientID = nil
		appt.CustomPatientName = &name
	}

	if req.ServiceID != nil {
		if err := s.requireService(ctx, *req.ServiceID); err != nil {
			return nil, err
		}
		appt.ServiceID = *req.ServiceID
	}
	if req.StaffIDSet {
		if req.StaffID != nil {
			if err := s.requireStaff(ctx, *req.StaffID); err != nil {
				return nil, err
			}
		}
		appt.StaffID = req.StaffID
	}
	if req.Date != nil {
		appt.Date = *req.Date
	}
	if req.Status != nil {
		status := model.AppointmentStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		appt.Status = status
	}
	if req.Notes != nil {
		appt.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&appt).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return s.Get(ctx, appt.ID)
}

func (s *appointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicBook is the reduced-trust booking entry point: no staff
// assignment, status always starts at BOOKED, and a contact phone is
// folded into the notes since walk-ins have no patient record to carry it.
func (s *appointmentService) PublicBook(ctx context.Context, req PublicBookRequest) (*model.Appointment, error) {
	notes := ""
	if req.Notes != nil {
		notes = strings.TrimSpace(*req.Notes)
	}
	if req.Phone != nil {
		if phone := strings.TrimSpace(*req.Phone); phone != "" {
			if notes != "" {
				notes += "\n"
			}
			notes += "Phone: " + phone
		}
	}

	return s.Create(ctx, CreateRequest{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Notes:       &notes,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// resolveIdentity picks the stored patient identity: a registered patient
// id wins over a guest name, a guest name that is empty after trimming
// counts as absent, and having neither is an error.
func resolveIdentity(patientID *uuid.UUID, patientName *string) (*uuid.UUID, *string, error) {
	if patientID != nil {
		return patientID, nil, nil
	}
	if name, ok := trimmedName(patientName); ok {
		return nil, &name, nil
	}
	return nil, nil, ErrPatientIdentityMissing
}

func trimmedName(name *string) (string, bool) {
	if name == nil {
		return "", false
	}
	n := strings.TrimSpace(*name)
	return n, n != ""
}

func decorate(appt *model.Appointment) *model.Appointment {
	switch {
	case appt.Patient != nil:
		appt.PatientName = strings.TrimSpace(appt.Patient.FirstName + " " + appt.Patient.LastName)
	case appt.CustomPatientName != nil:
		appt.PatientName = *appt.CustomPatientName
	}
	if appt.Service != nil {
		appt.ServiceName = appt.Service.Name
	}
	if appt.Staff != nil {
		name := appt.Staff.DisplayName()
		appt.StaffName = &name
	}
	return appt
}

func (s *appointmentService) requireService(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Service{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check service: %w", err)
	}
	if n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (s *appointmentService) requirePatient(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Patient{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if n == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (s *appointmentService) requireStaff(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check staff: %w", err)
	}
	if n == 0 {
		return ErrStaffNotFound
	}
	return nil
}
