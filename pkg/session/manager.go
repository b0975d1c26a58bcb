package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
)

const (
	keyPrefix     = "session:"
	userKeyPrefix = "user_sessions:"
)

// Manager issues signed session tokens and tracks live sessions in
// Redis. A token is only accepted while its session record exists, so
// destroying the record revokes access immediately regardless of the
// token's own expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration
	rdb    *goredis.Client
}

func NewManager(cfg config.SessionConfig, rdb *goredis.Client) *Manager {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: []byte(cfg.Secret), ttl: ttl, rdb: rdb}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Start creates a session for the user and returns the signed token.
func (m *Manager) Start(ctx context.Context, userID uuid.UUID, role string) (string, *Claims, error) {
	sid, err := uuid.NewV7()
	if err != nil {
		return "", nil, fmt.Errorf("generate session id: %w", err)
	}

	exp := time.Now().UTC().Add(m.ttl)
	token, err := m.signToken(userID, sid, role, exp)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := m.rdb.Set(ctx, keyPrefix+sid.String(), userID.String(), m.ttl).Err(); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	// Track the user's live sessions so they can all be revoked at once.
	userKey := userKeyPrefix + userID.String()
	pipe := m.rdb.Pipeline()
	pipe.SAdd(ctx, userKey, sid.String())
	pipe.Expire(ctx, userKey, m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", nil, fmt.Errorf("track session: %w", err)
	}

	return token, &Claims{UserID: userID, SessionID: sid, Role: role, ExpiresAt: exp}, nil
}

// Verify parses the token and checks that its session still exists.
func (m *Manager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.parseToken(token)
	if err != nil {
		return nil, err
	}

	stored, err := m.rdb.Get(ctx, keyPrefix+claims.SessionID.String()).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if stored != claims.UserID.String() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Destroy removes a single session.
func (m *Manager) Destroy(ctx context.Context, claims *Claims) error {
	pipe := m.rdb.Pipeline()
	pipe.Del(ctx, keyPrefix+claims.SessionID.String())
	pipe.SRem(ctx, userKeyPrefix+claims.UserID.String(), claims.SessionID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// DestroyAll removes every live session for a user. Used when their
// role or password changes so stale tokens stop working at once.
func (m *Manager) DestroyAll(ctx context.Context, userID uuid.UUID) error {
	userKey := userKeyPrefix + userID.String()
	sids, err := m.rdb.SMembers(ctx, userKey).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("list sessions: %w", err)
	}

	pipe := m.rdb.Pipeline()
	for _, sid := range sids {
		pipe.Del(ctx, keyPrefix+sid)
	}
	pipe.Del(ctx, userKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("destroy sessions: %w", err)
	}
	return nil
}

func (m *Manager) signToken(userID, sid uuid.UUID, role string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"sid":  sid.String(),
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *Manager) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	sidStr, _ := mc["sid"].(string)
	role, _ := mc["role"].(string)

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sid, err := uuid.Parse(sidStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, SessionID: sid, Role: role, ExpiresAt: exp.Time}, nil
}
