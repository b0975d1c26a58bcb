// Package settings manages the singleton site settings row that drives the
// public site header, footer and contact blocks.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// UpdateRequest replaces the whole settings document. Absent fields reset to
// their zero value, matching PUT semantics.
type UpdateRequest struct {
	ClinicName   string
	Tagline      *string
	Phone        string
	Email        string
	Address      string
	OpeningHours string
	SocialLinks  map[string]string
	HeroImage    *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

// Service reads and replaces the site settings.
type Service interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
	Update(ctx context.Context, req UpdateRequest) (*model.SiteSettings, error)
}

type settingsService struct {
	db *gorm.DB
}

// New builds the settings service.
func New(db *gorm.DB) Service {
	return &settingsService{db: db}
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

// Get returns the settings row, or an empty document when nothing has been
// saved yet so the admin UI always has something to render.
func (s *settingsService) Get(ctx context.Context) (*model.SiteSettings, error) {
	var settings model.SiteSettings
	err := s.db.WithContext(ctx).First(&settings, "key = ?", model.SiteSettingsKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.SiteSettings{Key: model.SiteSettingsKey}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	return &settings, nil
}

func (s *settingsService) Update(ctx context.Context, req UpdateRequest) (*model.SiteSettings, error) {
	links, err := marshalLinks(req.SocialLinks)
	if err != nil {
		return nil, err
	}

	settings := model.SiteSettings{
		Key:          model.SiteSettingsKey,
		ClinicName:   strings.TrimSpace(req.ClinicName),
		Tagline:      normalizeOptional(req.Tagline),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		OpeningHours: strings.TrimSpace(req.OpeningHours),
		SocialLinks:  links,
		HeroImage:    normalizeOptional(req.HeroImage),
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("save site settings: %w", err)
	}
	return s.Get(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func marshalLinks(links map[string]string) (datatypes.JSON, error) {
	if links == nil {
		links = map[string]string{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("encode social links: %w", err)
	}
	return datatypes.JSON(raw), nil
}

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
