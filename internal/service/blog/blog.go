package blog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ListRequest struct {
	PublishedOnly bool
}

type CreateRequest struct {
	Title      string
	Slug       *string
	Excerpt    *string
	Body       *string
	CoverImage *string
	Published  *bool
}

type UpdateRequest struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Body       *string
	CoverImage *string
	Published  *bool
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]*model.Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	Create(ctx context.Context, req CreateRequest) (*model.Blog, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type blogService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &blogService{db: db}
}

func (s *blogService) List(ctx context.Context, req ListRequest) ([]*model.Blog, error) {
	q := s.db.WithContext(ctx)
	if req.PublishedOnly {
		q = q.Where("published = ?", true)
	}

	var blogs []*model.Blog
	if err := q.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (s *blogService) Get(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	var b model.Blog
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return &b, nil
}

func (s *blogService) Create(ctx context.Context, req CreateRequest) (*model.Blog, error) {
	b := model.Blog{
		Title:      strings.TrimSpace(req.Title),
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
	}
	if req.Body != nil {
		b.Body = *req.Body
	}

	// The slug defaults to one derived from the title; a supplied slug is
	// normalized the same way so urls stay predictable.
	slugSource := b.Title
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		slugSource = *req.Slug
	}
	b.Slug = Slugify(slugSource)
	if b.Slug == "" {
		return nil, ErrEmptySlug
	}

	if req.Published != nil && *req.Published {
		b.Published = true
		now := time.Now()
		b.PublishedAt = &now
	}

	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return s.Get(ctx, b.ID)
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.Blog, error) {
	var b model.Blog
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load blog: %w", err)
	}

	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return nil, ErrEmptySlug
		}
		b.Slug = slug
	}
	if req.Excerpt != nil {
		b.Excerpt = req.Excerpt
	}
	if req.Body != nil {
		b.Body = *req.Body
	}
	if req.CoverImage != nil {
		b.CoverImage = req.CoverImage
	}
	if req.Published != nil {
		switch {
		case *req.Published && !b.Published:
			now := time.Now()
			b.Published = true
			b.PublishedAt = &now
		case !*req.Published && b.Published:
			b.Published = false
			b.PublishedAt = nil
		}
	}

	if err := s.db.WithContext(ctx).Save(&b).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Blog{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete blog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Slug
// ---------------------------------------------------------------------------

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
