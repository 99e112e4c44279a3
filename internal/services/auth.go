package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
	"github.com/AnshRaj112/jurnal-backend/pkg/utils"
	"github.com/google/uuid"
)

// MaxDisplayNameLength caps Profile.DisplayName.
const MaxDisplayNameLength = 60

type accountStore interface {
	store.UserStore
	store.ProfileStore
}

// SignupInput is a registration request.
type SignupInput struct {
	Username    string
	Password    string
	DisplayName string
}

// ProfileUpdate changes the fields that are non-nil.
type ProfileUpdate struct {
	DisplayName *string
	Locale      *string
}

// Account is the caller's identity plus preferences.
type Account struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// Session is returned by signup and signin.
type Session struct {
	Account
	Token string `json:"token"`
}

// AuthService owns usernames, password hashes and sessions.
type AuthService struct {
	store    accountStore
	sessions SessionStore
	hash     func(string) (string, error)
	verify   func(password, hash string) (bool, error)
	now      func() time.Time
}

func NewAuthService(st accountStore, sessions SessionStore) *AuthService {
	return &AuthService{
		store:    st,
		sessions: sessions,
		hash:     utils.HashPassword,
		verify:   utils.VerifyPassword,
		now:      time.Now,
	}
}

// Signup registers a username, creates its profile and opens a session.
// The profile locale starts as the request locale.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, locale i18n.Locale) (*Session, error) {
	t := i18n.For(locale)
	log := observability.LoggerFromContext(ctx)

	if err := utils.ValidateUsername(in.Username); err != nil {
		return nil, invalid(t, err)
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, invalid(t, err)
	}
	displayName := strings.TrimSpace(in.DisplayName)
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, newError(KindInvalid, "", t.T("request.invalidBody"), nil)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, newError(KindUnexpected, "", t.T("auth.failure"), err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     utils.NormalizeUsername(in.Username),
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if displayName == "" {
		displayName = strings.TrimSpace(in.Username)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, newError(KindConflict, "", t.T("auth.usernameTaken"), err)
		}
		log.Error("failed to create user", "error", err)
		return nil, newError(KindPersistence, OpSave, t.T("auth.failure"), err)
	}

	profile := &models.Profile{
		UserID:      user.ID,
		DisplayName: displayName,
		Locale:      locale.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		log.Error("failed to create profile", "error", err, "user_id", user.ID)
		if derr := s.store.DeleteUser(ctx, user.ID); derr != nil {
			log.Error("failed to roll back user", "error", derr, "user_id", user.ID)
		}
		return nil, newError(KindPersistence, OpSave, t.T("auth.failure"), err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Error("failed to create session", "error", err, "user_id", user.ID)
		return nil, newError(KindUnexpected, "", t.T("auth.failure"), err)
	}

	log.Info("user signed up", "user_id", user.ID)
	return &Session{Account: Account{User: user, Profile: profile}, Token: token}, nil
}

// Signin checks the password and replaces any existing session of the user.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, username, password string, locale i18n.Locale) (*Session, error) {
	t := i18n.For(locale)
	log := observability.LoggerFromContext(ctx)
	badCredentials := newError(KindUnauthorized, "", t.T("auth.invalidCredentials"), nil)

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, badCredentials
	}

	user, err := s.store.GetUserByUsername(ctx, utils.NormalizeUsername(username))
	if errors.Is(err, store.ErrNotFound) {
		return nil, badCredentials
	}
	if err != nil {
		log.Error("failed to load user", "error", err)
		return nil, newError(KindPersistence, OpFetch, t.T("auth.failure"), err)
	}

	ok, err := s.verify(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, badCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Error("failed to create session", "error", err, "user_id", user.ID)
		return nil, newError(KindUnexpected, "", t.T("auth.failure"), err)
	}

	profile, err := s.store.GetProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn("failed to load profile at signin", "error", err, "user_id", user.ID)
	}
	return &Session{Account: Account{User: user, Profile: profile}, Token: token}, nil
}

// Signout drops the session behind token. Unknown tokens are not an error.
func (s *AuthService) Signout(ctx context.Context, token string, locale i18n.Locale) error {
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to invalidate session", "error", err)
		return newError(KindUnexpected, "", i18n.For(locale).T("auth.failure"), err)
	}
	return nil
}

// Authenticate resolves a bearer token to a user id. An empty id means no valid session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, ok, err := s.sessions.Validate(ctx, token)
	if err != nil || !ok {
		return "", err
	}
	return userID, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string, locale i18n.Locale) (*Account, error) {
	t := i18n.For(locale)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), err)
	}
	if err != nil {
		return nil, newError(KindPersistence, OpFetch, t.T("auth.failure"), err)
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindPersistence, OpFetch, t.T("auth.failure"), err)
	}
	return &Account{User: user, Profile: profile}, nil
}

// UpdateProfile applies u to the caller's profile, creating it if missing.
// Locale tags are normalized to a supported locale.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, u ProfileUpdate, locale i18n.Locale) (*models.Profile, error) {
	t := i18n.For(locale)
	if userID == "" {
		return nil, newError(KindUnauthorized, "", t.T("auth.required"), nil)
	}

	now := s.now().UTC()
	profile, err := s.store.GetProfile(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		profile = &models.Profile{UserID: userID, Locale: locale.String(), CreatedAt: now}
	case err != nil:
		return nil, newError(KindPersistence, OpFetch, t.T("auth.failure"), err)
	}

	if u.DisplayName != nil {
		name := strings.TrimSpace(*u.DisplayName)
		if utf8.RuneCountInString(name) > MaxDisplayNameLength {
			return nil, newError(KindInvalid, "", t.T("request.invalidBody"), nil)
		}
		profile.DisplayName = name
	}
	if u.Locale != nil {
		profile.Locale = i18n.Parse(*u.Locale).String()
	}
	profile.UpdatedAt = now

	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to update profile", "error", err)
		return nil, newError(KindPersistence, OpSave, t.T("auth.failure"), err)
	}
	return profile, nil
}
