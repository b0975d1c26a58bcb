// Package clinicpage manages the specialty clinic content cards shown on the
// public site (sports injuries, women's health, and so on).
package clinicpage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// ListRequest narrows the clinic listing.
type ListRequest struct {
	ActiveOnly bool
}

// CreateRequest carries the fields for a new specialty clinic card.
type CreateRequest struct {
	Name        string
	Title       *string
	Description string
	Image       *string
	Priority    *int
	Active      *bool
}

// UpdateRequest applies a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Title       *string
	Description *string
	Image       *string
	Priority    *int
	Active      *bool
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

// Service manages specialty clinic pages.
type Service interface {
	List(ctx context.Context, req ListRequest) ([]model.SpecialtyClinic, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SpecialtyClinic, error)
	Create(ctx context.Context, req CreateRequest) (*model.SpecialtyClinic, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.SpecialtyClinic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clinicPageService struct {
	db *gorm.DB
}

// New builds the specialty clinic service.
func New(db *gorm.DB) Service {
	return &clinicPageService{db: db}
}

const defaultPriority = 100

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

func (s *clinicPageService) List(ctx context.Context, req ListRequest) ([]model.SpecialtyClinic, error) {
	q := s.db.WithContext(ctx).Model(&model.SpecialtyClinic{})
	if req.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var clinics []model.SpecialtyClinic
	if err := q.Order("priority ASC, name ASC").Find(&clinics).Error; err != nil {
		return nil, fmt.Errorf("list specialty clinics: %w", err)
	}
	return clinics, nil
}

func (s *clinicPageService) Get(ctx context.Context, id uuid.UUID) (*model.SpecialtyClinic, error) {
	var clinic model.SpecialtyClinic
	err := s.db.WithContext(ctx).First(&clinic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load specialty clinic: %w", err)
	}
	return &clinic, nil
}

func (s *clinicPageService) Create(ctx context.Context, req CreateRequest) (*model.SpecialtyClinic, error) {
	clinic := model.SpecialtyClinic{
		Name:        strings.TrimSpace(req.Name),
		Title:       normalizeOptional(req.Title),
		Description: req.Description,
		Image:       normalizeOptional(req.Image),
		Priority:    defaultPriority,
		Active:      true,
	}
	if req.Priority != nil {
		clinic.Priority = *req.Priority
	}
	if req.Active != nil {
		clinic.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Create(&clinic).Error; err != nil {
		return nil, fmt.Errorf("create specialty clinic: %w", err)
	}
	return s.Get(ctx, clinic.ID)
}

func (s *clinicPageService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.SpecialtyClinic, error) {
	var clinic model.SpecialtyClinic
	err := s.db.WithContext(ctx).First(&clinic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load specialty clinic: %w", err)
	}

	if req.Name != nil {
		clinic.Name = strings.TrimSpace(*req.Name)
	}
	if req.Title != nil {
		clinic.Title = normalizeOptional(req.Title)
	}
	if req.Description != nil {
		clinic.Description = *req.Description
	}
	if req.Image != nil {
		clinic.Image = normalizeOptional(req.Image)
	}
	if req.Priority != nil {
		clinic.Priority = *req.Priority
	}
	if req.Active != nil {
		clinic.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(&clinic).Error; err != nil {
		return nil, fmt.Errorf("update specialty clinic: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *clinicPageService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.SpecialtyClinic{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete specialty clinic: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// normalizeOptional trims an optional string and treats the empty result as
// absent, so clients can clear a field by sending "".
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
