// Package user manages the back-office accounts admins create for their
// staff. Patients never get a user record; their portal access lives in
// PatientAccount.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/email"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/util/password"
)

const tempPasswordLength = 16

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// CreateRequest carries the fields for a new back-office account. When
// Password is absent a temporary one is generated and returned once.
type CreateRequest struct {
	Email      string
	Name       *string
	Role       string
	Password   *string
	SendInvite bool
}

// CreateResult is the created account plus the generated temporary
// password, set only when the caller let the system pick one.
type CreateResult struct {
	User         *model.User
	TempPassword string
}

// UpdateRequest applies a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	Name *string
	Role *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

// Service manages back-office accounts.
type Service interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	mail     *email.Client
	cfg      *config.Config
	sessions *session.Manager
}

// New builds the user service.
func New(db *gorm.DB, mail *email.Client, cfg *config.Config, sessions *session.Manager) Service {
	return &userService{db: db, mail: mail, cfg: cfg, sessions: sessions}
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

func (s *userService) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	role := model.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	plain, generated := suppliedPassword(req.Password)
	if generated {
		plain = password.Generate(tempPasswordLength)
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         normalizeOptional(req.Name),
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if req.SendInvite && s.mail != nil && s.cfg.Email.Enabled {
		data := email.StaffInvitationData{
			Name:     u.DisplayName(),
			Email:    u.Email,
			Role:     string(u.Role),
			LoginURL: s.loginURL(),
		}
		if generated {
			data.TempPassword = plain
		}
		if err := s.mail.Send(ctx, email.BuildStaffInvitationEmail(data)); err != nil {
			slog.Warn("failed to send staff invitation email", "email", u.Email, "error", err)
		}
	}

	res := &CreateResult{User: &u}
	if generated {
		res.TempPassword = plain
	}
	return res, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = normalizeOptional(req.Name)
	}

	roleChanged := false
	if req.Role != nil {
		role := model.Role(strings.ToUpper(strings.TrimSpace(*req.Role)))
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		if role != u.Role {
			if u.Role == model.RoleAdmin {
				if err := s.requireAnotherAdmin(ctx, id); err != nil {
					return nil, err
				}
			}
			u.Role = role
			roleChanged = true
		}
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		if terr := database.Translate(err); !errors.Is(terr, err) {
			return nil, terr
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	// A demoted account must not keep acting under its old role.
	if roleChanged {
		if err := s.sessions.DestroyAll(ctx, id); err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
	}

	return s.Get(ctx, id)
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	res := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := s.sessions.DestroyAll(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		if err := s.requireAnotherAdmin(ctx, id); err != nil {
			return err
		}
	}

	res := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := s.sessions.DestroyAll(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// requireAnotherAdmin fails with ErrLastAdmin when no ADMIN account
// other than excludeID exists. Called before demoting or deleting an
// admin so the back office can never lock itself out.
func (s *userService) requireAnotherAdmin(ctx context.Context, excludeID uuid.UUID) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND id <> ?", model.RoleAdmin, excludeID).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n == 0 {
		return ErrLastAdmin
	}
	return nil
}

func (s *userService) loginURL() string {
	path := s.cfg.Session.LoginPath
	if path == "" {
		path = "/login"
	}
	domain := strings.TrimRight(s.cfg.Server.Domain, "/")
	if domain == "" {
		return path
	}
	return domain + path
}

func suppliedPassword(p *string) (plain string, generate bool) {
	if p == nil {
		return "", true
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return "", true
	}
	return trimmed, false
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
