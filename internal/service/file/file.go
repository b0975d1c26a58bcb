// Package file handles image and document uploads for blog covers,
// doctor photos and service galleries.
package file

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/storage"
)

const (
	uploadPrefix        = "uploads"
	defaultMaxSizeBytes = 10 << 20
)

var defaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"application/pdf",
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	URL         string
	Filename    string
	Size        int64
	ContentType string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	Delete(ctx context.Context, url string) error
}

type fileService struct {
	backend storage.Backend
	cfg     *config.Config
}

// New builds the file service on whichever storage backend config selected.
func New(backend storage.Backend, cfg *config.Config) Service {
	return &fileService{backend: backend, cfg: cfg}
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

// Upload validates size and content type before anything touches the
// backend, so rejected files are never written anywhere.
func (s *fileService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Size <= 0 {
		return nil, ErrEmptyFile
	}
	if req.Size > s.maxSize() {
		return nil, ErrTooLarge
	}

	contentType := normalizeContentType(req.ContentType)
	if !s.allowedType(contentType) {
		return nil, ErrUnsupportedType
	}

	key := storage.NewKey(uploadPrefix, req.Filename)
	url, err := s.backend.Store(ctx, key, contentType, req.Body, req.Size)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return &UploadResult{
		URL:         url,
		Filename:    req.Filename,
		Size:        req.Size,
		ContentType: contentType,
	}, nil
}

func (s *fileService) Delete(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrInvalidURL
	}
	if err := s.backend.Delete(ctx, url); err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *fileService) maxSize() int64 {
	if s.cfg.Uploads.MaxSizeBytes > 0 {
		return s.cfg.Uploads.MaxSizeBytes
	}
	return defaultMaxSizeBytes
}

func (s *fileService) allowedType(contentType string) bool {
	allowed := s.cfg.Uploads.AllowedTypes
	if len(allowed) == 0 {
		allowed = defaultAllowedTypes
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), contentType) {
			return true
		}
	}
	return false
}

// normalizeContentType lowercases the media type and strips parameters
// like "; charset=utf-8".
func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
