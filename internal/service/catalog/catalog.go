package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ListRequest struct {
	ActiveOnly bool
	RootOnly   bool
}

type CreateRequest struct {
	Name             string
	Description      *string
	ShortDescription *string
	DurationMinutes  *int
	Priority         *int
	Active           *bool
	Images           []string
	ParentID         *uuid.UUID
}

// UpdateRequest carries partial updates. ParentIDSet distinguishes an
// explicit null (detach from parent) from an absent field.
type UpdateRequest struct {
	Name             *string
	Description      *string
	ShortDescription *string
	DurationMinutes  *int
	Priority         *int
	Active           *bool
	Images           *[]string
	ParentIDSet      bool
	ParentID         *uuid.UUID
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]*model.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Create(ctx context.Context, req CreateRequest) (*model.Service, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

const defaultPriority = 100

type catalogService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &catalogService{db: db}
}

func (s *catalogService) List(ctx context.Context, req ListRequest) ([]*model.Service, error) {
	q := s.db.WithContext(ctx)
	if req.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if req.RootOnly {
		q = q.Where("parent_id IS NULL")
	}

	var services []*model.Service
	if err := q.Order("priority ASC, name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := s.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC, name ASC")
		}).
		First(&svc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &svc, nil
}

func (s *catalogService) Create(ctx context.Context, req CreateRequest) (*model.Service, error) {
	svc := model.Service{
		Name:             strings.TrimSpace(req.Name),
		ShortDescription: req.ShortDescription,
		DurationMinutes:  req.DurationMinutes,
		Priority:         defaultPriority,
		Active:           true,
		ParentID:         req.ParentID,
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Priority != nil {
		svc.Priority = *req.Priority
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	images, err := imagesJSON(req.Images)
	if err != nil {
		return nil, err
	}
	svc.Images = images

	if req.ParentID != nil {
		if err := s.requireRootParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&svc).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s.Get(ctx, svc.ID)
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Service, error) {
	var svc model.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load service: %w", err)
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.ShortDescription != nil {
		svc.ShortDescription = req.ShortDescription
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = req.DurationMinutes
	}
	if req.Priority != nil {
		svc.Priority = *req.Priority
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.Images != nil {
		images, err := imagesJSON(*req.Images)
		if err != nil {
			return nil, err
		}
		svc.Images = images
	}

	if req.ParentIDSet {
		if req.ParentID != nil {
			if *req.ParentID == id {
				return nil, ErrSelfParent
			}
			if err := s.requireRootParent(ctx, *req.ParentID); err != nil {
				return nil, err
			}
			// A service that has children is a root itself and cannot be
			// nested under another root.
			var children int64
			if err := s.db.WithContext(ctx).Model(&model.Service{}).
				Where("parent_id = ?", id).Count(&children).Error; err != nil {
				return nil, fmt.Errorf("count children: %w", err)
			}
			if children > 0 {
				return nil, ErrHasChildren
			}
		}
		svc.ParentID = req.ParentID
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&svc).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a service, detaching any children first so they survive
// as roots. A service still referenced by appointments or usage history
// fails the foreign key check and surfaces as an integrity error.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Service{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach children: %w", err)
		}
		res := tx.Delete(&model.Service{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete service: %w", res.Error)
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
// Helpers
// ---------------------------------------------------------------------------

func (s *catalogService) requireRootParent(ctx context.Context, parentID uuid.UUID) error {
	var parent model.Service
	err := s.db.WithContext(ctx).Select("id", "parent_id").First(&parent, "id = ?", parentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return fmt.Errorf("load parent: %w", err)
	}
	if parent.ParentID != nil {
		return ErrParentNotRoot
	}
	return nil
}

func imagesJSON(urls []string) (datatypes.JSON, error) {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return datatypes.JSON(b), nil
}
