package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ListRequest struct {
	ActiveOnly   bool
	FeaturedOnly bool
}

type CreateRequest struct {
	FirstName       string
	LastName        string
	Title           *string
	Specialty       *string
	ShortBio        *string
	LongBio         *string
	Email           *string
	Phone           *string
	YearsExperience *int
	Priority        *int
	Photo           *string
	Gallery         []string
	Active          *bool
	Featured        *bool
}

// UpdateRequest carries partial updates; empty strings clear the optional
// contact fields and photo.
type UpdateRequest struct {
	FirstName       *string
	LastName        *string
	Title           *string
	Specialty       *string
	ShortBio        *string
	LongBio         *string
	Email           *string
	Phone           *string
	YearsExperience *int
	Priority        *int
	Photo           *string
	Gallery         *[]string
	Active          *bool
	Featured        *bool
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]*model.Doctor, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	Create(ctx context.Context, req CreateRequest) (*model.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

const defaultPriority = 100

type doctorService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &doctorService{db: db}
}

func (s *doctorService) List(ctx context.Context, req ListRequest) ([]*model.Doctor, error) {
	q := s.db.WithContext(ctx)
	if req.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if req.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}

	var doctors []*model.Doctor
	if err := q.Order("priority ASC, last_name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *doctorService) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var d model.Doctor
	if err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return &d, nil
}

func (s *doctorService) Create(ctx context.Context, req CreateRequest) (*model.Doctor, error) {
	d := model.Doctor{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     normalizeOptional(req.Email),
		Phone:     normalizeOptional(req.Phone),
		Photo:     normalizeOptional(req.Photo),
		Priority:  defaultPriority,
		Active:    true,
	}
	if req.Title != nil {
		d.Title = strings.TrimSpace(*req.Title)
	}
	if req.Specialty != nil {
		d.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.ShortBio != nil {
		d.ShortBio = strings.TrimSpace(*req.ShortBio)
	}
	if req.LongBio != nil {
		d.LongBio = *req.LongBio
	}
	if req.YearsExperience != nil {
		d.YearsExperience = *req.YearsExperience
	}
	if req.Priority != nil {
		d.Priority = *req.Priority
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if req.Featured != nil {
		d.Featured = *req.Featured
	}
	gallery, err := galleryJSON(req.Gallery)
	if err != nil {
		return nil, err
	}
	d.Gallery = gallery

	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return s.Get(ctx, d.ID)
}

func (s *doctorService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Doctor, error) {
	var d model.Doctor
	if err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	if req.FirstName != nil {
		d.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		d.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Title != nil {
		d.Title = strings.TrimSpace(*req.Title)
	}
	if req.Specialty != nil {
		d.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.ShortBio != nil {
		d.ShortBio = strings.TrimSpace(*req.ShortBio)
	}
	if req.LongBio != nil {
		d.LongBio = *req.LongBio
	}
	if req.Email != nil {
		d.Email = normalizeOptional(req.Email)
	}
	if req.Phone != nil {
		d.Phone = normalizeOptional(req.Phone)
	}
	if req.YearsExperience != nil {
		d.YearsExperience = *req.YearsExperience
	}
	if req.Priority != nil {
		d.Priority = *req.Priority
	}
	if req.Photo != nil {
		d.Photo = normalizeOptional(req.Photo)
	}
	if req.Gallery != nil {
		gallery, err := galleryJSON(*req.Gallery)
		if err != nil {
			return nil, err
		}
		d.Gallery = gallery
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if req.Featured != nil {
		d.Featured = *req.Featured
	}

	if err := s.db.WithContext(ctx).Save(&d).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *doctorService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete doctor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
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

func galleryJSON(urls []string) (datatypes.JSON, error) {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encode gallery: %w", err)
	}
	return datatypes.JSON(b), nil
}
