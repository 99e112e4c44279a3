package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// SessionStore issues and checks bearer tokens. Each user has at most one live session.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	// Validate returns the owning user id. Unknown or expired tokens are ("", false, nil).
	Validate(ctx context.Context, token string) (string, bool, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateUser(ctx context.Context, userID string) error
}

func newSessionToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// RedisSessions keeps session:<token> -> user id and user_session:<user> -> token.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client, ttl: SessionDuration}
}

// Create replaces any previous session for the user so the 7-day timer restarts.
func (s *RedisSessions) Create(ctx context.Context, userID string) (string, error) {
	if err := s.InvalidateUser(ctx, userID); err != nil {
		return "", err
	}

	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SessionKeyPrefix+token, userID, s.ttl)
	pipe.Set(ctx, UserSessionKeyPrefix+userID, token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessions) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	userID, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, userID != "", nil
}

func (s *RedisSessions) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sessionKey := SessionKeyPrefix + token

	userID, err := s.client.Get(ctx, sessionKey).Result()
	if err == nil && userID != "" {
		s.client.Del(ctx, UserSessionKeyPrefix+userID)
	}
	return s.client.Del(ctx, sessionKey).Err()
}

func (s *RedisSessions) InvalidateUser(ctx context.Context, userID string) error {
	userSessionKey := UserSessionKeyPrefix + userID

	token, err := s.client.Get(ctx, userSessionKey).Result()
	if err == nil && token != "" {
		s.client.Del(ctx, SessionKeyPrefix+token)
	}
	return s.client.Del(ctx, userSessionKey).Err()
}

// MemorySessions is a SessionStore for tests and single-process development.
// Sessions never expire.
type MemorySessions struct {
	mu      sync.Mutex
	byToken map[string]string
	byUser  map[string]string
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		byToken: make(map[string]string),
		byUser:  make(map[string]string),
	}
}

func (s *MemorySessions) Create(_ context.Context, userID string) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[userID]; ok {
		delete(s.byToken, old)
	}
	s.byToken[token] = userID
	s.byUser[userID] = token
	return token, nil
}

func (s *MemorySessions) Validate(_ context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.byToken[token]
	return userID, ok, nil
}

func (s *MemorySessions) Invalidate(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID, ok := s.byToken[token]; ok {
		delete(s.byUser, userID)
	}
	delete(s.byToken, token)
	return nil
}

func (s *MemorySessions) InvalidateUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byUser[userID]; ok {
		delete(s.byToken, token)
	}
	delete(s.byUser, userID)
	return nil
}
