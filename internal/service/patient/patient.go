package patient

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

type PaginatedResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

type ListRequest struct {
	Search  string
	Page    int
	PerPage int
}

type CreateRequest struct {
	FirstName   string
	LastName    string
	Phone       *string
	Email       *string
	DateOfBirth *time.Time
	Notes       *string
	ServiceIDs  []uuid.UUID
}

// UpdateRequest carries partial updates. Phone and Email treat an empty
// string as "clear the stored value"; a nil ServiceIDs leaves the usage
// set untouched, a non-nil one reconciles the set to exactly its contents.
type UpdateRequest struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	Email       *string
	DateOfBirth *time.Time
	Notes       *string
	ServiceIDs  *[]uuid.UUID
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) (*PaginatedResult[*model.Patient], error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Create(ctx context.Context, req CreateRequest) (*model.Patient, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &patientService{db: db}
}

func (s *patientService) List(ctx context.Context, req ListRequest) (*PaginatedResult[*model.Patient], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	search := strings.TrimSpace(req.Search)
	where := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pat := "%" + search + "%"
		return db.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			pat, pat, pat, pat,
		)
	}

	var total int64
	if err := where(s.db.WithContext(ctx).Model(&model.Patient{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	var patients []*model.Patient
	err := where(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	return &PaginatedResult[*model.Patient]{
		Data:       patients,
		Total:      int(total),
		Page:       page,
		PerPage:    perPage,
		TotalPages: (int(total) + perPage - 1) / perPage,
	}, nil
}

func (s *patientService) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var p model.Patient
	err := s.db.WithContext(ctx).
		Preload("ServiceUsages.Service").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

func (s *patientService) Create(ctx context.Context, req CreateRequest) (*model.Patient, error) {
	p := model.Patient{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Phone:       normalizeOptional(req.Phone),
		Email:       normalizeOptional(req.Email),
		DateOfBirth: req.DateOfBirth,
	}
	if req.Notes != nil {
		p.Notes = strings.TrimSpace(*req.Notes)
	}
	serviceIDs := dedupe(req.ServiceIDs)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireServices(tx, serviceIDs); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return fmt.Errorf("create patient: %w", err)
		}
		return insertUsages(tx, p.ID, serviceIDs, time.Now())
	})
	if err != nil {
		return nil, database.Translate(err)
	}

	return s.Get(ctx, p.ID)
}

func (s *patientService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Patient, error) {
	var p model.Patient
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	if req.FirstName != nil {
		p.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		p.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		p.Phone = normalizeOptional(req.Phone)
	}
	if req.Email != nil {
		p.Email = normalizeOptional(req.Email)
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = req.DateOfBirth
	}
	if req.Notes != nil {
		p.Notes = strings.TrimSpace(*req.Notes)
	}

	// Field changes and usage reconciliation commit together or not at all.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var desired []uuid.UUID
		if req.ServiceIDs != nil {
			desired = dedupe(*req.ServiceIDs)
			if err := requireServices(tx, desired); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return fmt.Errorf("update patient: %w", err)
		}

		if req.ServiceIDs == nil {
			return nil
		}
		return reconcileUsages(tx, p.ID, desired)
	})
	if err != nil {
		return nil, database.Translate(err)
	}

	return s.Get(ctx, id)
}

func (s *patientService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&model.PatientServiceUsage{}).Error; err != nil {
			return fmt.Errorf("delete service usages: %w", err)
		}
		if err := tx.Where("patient_id = ?", id).Delete(&model.PatientAccount{}).Error; err != nil {
			return fmt.Errorf("delete portal account: %w", err)
		}
		res := tx.Delete(&model.Patient{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete patient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return database.Translate(err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Usage reconciliation
// ---------------------------------------------------------------------------

// reconcileUsages converts the stored usage set into the desired one with
// minimal writes: stale rows are deleted, new ids inserted, and rows whose
// service id survives are left untouched so their UsedAt is preserved.
func reconcileUsages(tx *gorm.DB, patientID uuid.UUID, desired []uuid.UUID) error {
	var existing []model.PatientServiceUsage
	if err := tx.Where("patient_id = ?", patientID).Find(&existing).Error; err != nil {
		return fmt.Errorf("load service usages: %w", err)
	}

	current := make(map[uuid.UUID]bool, len(existing))
	for _, u := range existing {
		current[u.ServiceID] = true
	}
	desiredSet := make(map[uuid.UUID]bool, len(desired))
	for _, sid := range desired {
		desiredSet[sid] = true
	}

	var stale []uuid.UUID
	for _, u := range existing {
		if !desiredSet[u.ServiceID] {
			stale = append(stale, u.ServiceID)
		}
	}
	var fresh []uuid.UUID
	for _, sid := range desired {
		if !current[sid] {
			fresh = append(fresh, sid)
		}
	}

	if len(stale) > 0 {
		if err := tx.Where("patient_id = ? AND service_id IN ?", patientID, stale).
			Delete(&model.PatientServiceUsage{}).Error; err != nil {
			return fmt.Errorf("remove service usages: %w", err)
		}
	}
	return insertUsages(tx, patientID, fresh, time.Now())
}

func insertUsages(tx *gorm.DB, patientID uuid.UUID, serviceIDs []uuid.UUID, usedAt time.Time) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	rows := make([]model.PatientServiceUsage, 0, len(serviceIDs))
	for _, sid := range serviceIDs {
		rows = append(rows, model.PatientServiceUsage{
			PatientID: patientID,
			ServiceID: sid,
			UsedAt:    usedAt,
		})
	}
	err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("insert service usages: %w", err)
	}
	return nil
}

func requireServices(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := tx.Model(&model.Service{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return fmt.Errorf("check services: %w", err)
	}
	if n != int64(len(ids)) {
		return ErrServiceUnknown
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
