package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
)

func newTestManager(secret string) *Manager {
	return NewManager(config.SessionConfig{Secret: secret, TTLMinutes: 60}, nil)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager("round-trip-secret")
	userID := uuid.New()
	sid := uuid.New()
	exp := time.Now().UTC().Add(time.Hour)

	token, err := m.signToken(userID, sid, "ADMIN", exp)
	if err != nil {
		t.Fatalf("signToken() error = %v", err)
	}

	claims, err := m.parseToken(token)
	if err != nil {
		t.Fatalf("parseToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.SessionID != sid {
		t.Errorf("SessionID = %v, want %v", claims.SessionID, sid)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("Role = %q, want %q", claims.Role, "ADMIN")
	}
	if claims.ExpiresAt.Unix() != exp.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Unix(), exp.Unix())
	}
}

func TestTokenExpired(t *testing.T) {
	m := newTestManager("expired-secret")

	token, err := m.signToken(uuid.New(), uuid.New(), "STAFF", time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("signToken() error = %v", err)
	}

	if _, err := m.parseToken(token); !errors.Is(err, ErrExpired) {
		t.Errorf("parseToken() error = %v, want ErrExpired", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTestManager("secret-a")
	verifier := newTestManager("secret-b")

	token, err := issuer.signToken(uuid.New(), uuid.New(), "ADMIN", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("signToken() error = %v", err)
	}

	if _, err := verifier.parseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("parseToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := newTestManager("garbage-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.parseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("parseToken(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}
