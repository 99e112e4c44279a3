package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
)

// Authenticator resolves a bearer token to a user id; "" means no valid session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type userCtxKey struct{}

type tokenCtxKey struct{}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the authenticated user id stored by Authenticate, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userCtxKey{}).(string)
	return id
}

// SessionToken returns the bearer token of an authenticated request.
func SessionToken(ctx context.Context) string {
	t, _ := ctx.Value(tokenCtxKey{}).(string)
	return t
}

// WithUser is what Authenticate stores; exported for handler tests.
func WithUser(ctx context.Context, userID, token string) context.Context {
	ctx = context.WithValue(ctx, userCtxKey{}, userID)
	ctx = context.WithValue(ctx, tokenCtxKey{}, token)
	return observability.WithUserID(ctx, userID)
}

// Authenticate rejects requests without a valid bearer session with 401.
// Run it after Locale so the message is localized.
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			var userID string
			if token != "" {
				var err error
				userID, err = auth.Authenticate(r.Context(), token)
				if err != nil {
					observability.LoggerFromContext(r.Context()).Error("session lookup failed", "error", err)
				}
			}
			if userID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": i18n.For(i18n.FromContext(r.Context())).T("auth.required"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, token)))
		})
	}
}
