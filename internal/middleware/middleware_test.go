package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
)

type stubAuth map[string]string

func (s stubAuth) Authenticate(_ context.Context, token string) (string, error) {
	return s[token], nil
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"abc":          "",
		"":             "",
	}
	for header, want := range tests {
		if got := BearerToken(header); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	var seen string
	h := Locale(Authenticate(stubAuth{"good": "user-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		if SessionToken(r.Context()) != "good" {
			t.Errorf("SessionToken() = %q", SessionToken(r.Context()))
		}
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seen != "user-1" {
		t.Errorf("valid token: code %d, user %q", rec.Code, seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	req.Header.Set("X-Locale", "en")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: code %d", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Success || body.Message != "You need to sign in to continue." {
		t.Errorf("body = %+v", body)
	}
}

func TestLocale(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		accept string
		want   i18n.Locale
	}{
		{"default", "", "", "", i18n.Indonesian},
		{"header", "en", "id", "id", i18n.English},
		{"query", "", "en", "id", i18n.English},
		{"unsupported header falls through", "fr", "", "en-GB,en;q=0.8", i18n.English},
		{"accept language", "", "", "fr-FR, id;q=0.9", i18n.Indonesian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got i18n.Locale = -1
			h := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = i18n.FromContext(r.Context())
			}))
			target := "/"
			if tt.query != "" {
				target += "?locale=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("X-Locale", tt.header)
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("locale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHostCheck(t *testing.T) {
	h := HostCheck("api.jurnal.app")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "http://api.jurnal.app:8080/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("matching host: code %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "http://evil.example/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("other host: code %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"https://jurnal.app"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))
	req := httptest.NewRequest(http.MethodOptions, "/api/journals", nil)
	req.Header.Set("Origin", "https://jurnal.app")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://jurnal.app" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
