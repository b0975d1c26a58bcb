package session

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the app-facing session token payload.
type Claims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Role      string
	ExpiresAt time.Time
}

// GetUserID implements authorize.ClaimsProvider.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// GetRole implements authorize.ClaimsProvider.
func (c *Claims) GetRole() string {
	return c.Role
}

func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
