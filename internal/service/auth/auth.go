// Package auth covers back-office sign-in and the public patient portal
// registration. Sessions live in Redis behind pkg/session, so a logout
// or password change revokes access immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/util/password"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult carries the signed session token for the cookie plus the
// authenticated account.
type LoginResult struct {
	Token  string
	Claims *session.Claims
	User   *model.User
}

// RegisterPortalRequest creates a patient record with a portal login
// from the public site.
type RegisterPortalRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Password  string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, claims *session.Claims) error
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	RegisterPortalAccount(ctx context.Context, req RegisterPortalRequest) (*model.Patient, error)
}

type authService struct {
	db       *gorm.DB
	sessions *session.Manager
	cfg      *config.Config
}

// New builds the auth service.
func New(db *gorm.DB, sessions *session.Manager, cfg *config.Config) Service {
	return &authService{db: db, sessions: sessions, cfg: cfg}
}

// ---------------------------------------------------------------------------
// Login / Logout / Me
// ---------------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u model.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Match(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.sessions.Start(ctx, u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	return &LoginResult{Token: token, Claims: claims, User: &u}, nil
}

func (s *authService) Logout(ctx context.Context, claims *session.Claims) error {
	if err := s.sessions.Destroy(ctx, claims); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Portal registration
// ---------------------------------------------------------------------------

// RegisterPortalAccount creates the patient record and its portal login
// in one transaction, so a duplicate email never leaves an orphaned
// patient behind.
func (s *authService) RegisterPortalAccount(ctx context.Context, req RegisterPortalRequest) (*model.Patient, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	patient := model.Patient{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     normalizeOptional(req.Phone),
		Email:     &email,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&patient).Error; err != nil {
			return err
		}
		account := model.PatientAccount{
			PatientID:    patient.ID,
			Email:        email,
			PasswordHash: hash,
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("register portal account: %w", err)
	}

	return &patient, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

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
