package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/middleware"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/services"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

// maxBodyBytes bounds request bodies; entries are capped well below this.
const maxBodyBytes = 1 << 20

// Handler serves the HTTP API on top of the services.
type Handler struct {
	Auth      *services.AuthService
	Journals  *services.JournalService
	Summaries *services.SummaryService
	Weekly    *services.WeeklyService
	Insights  *services.InsightService
	Accounts  *services.AccountService
	Store     store.Store
}

// Response is the envelope shared by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindNoEntries, services.KindInvalid:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error to its status code. Errors that did not come
// from a service get the generic localized message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		writeJSON(w, statusFor(se.Kind), Response{Success: false, Message: se.Message})
		return
	}
	observability.LoggerFromContext(r.Context()).Error("unexpected handler error", "error", err)
	writeJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Message: translator(r).T("request.unexpected"),
	})
}

// decode reads a JSON body into v and writes a 400 on failure. An empty body is allowed.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: translator(r).T("request.invalidBody")})
	return false
}

func locale(r *http.Request) i18n.Locale {
	return i18n.FromContext(r.Context())
}

func translator(r *http.Request) i18n.Translator {
	return i18n.For(locale(r))
}

func userID(r *http.Request) string {
	return middleware.UserID(r.Context())
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

// Health reports whether the storage backend answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		observability.LoggerFromContext(r.Context()).Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
