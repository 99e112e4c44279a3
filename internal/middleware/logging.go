package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/pkg/clientip"
)

// RequestLogger copies chi's request id into the logging context and writes one
// line per request. Use after chimw.RequestID.
func RequestLogger(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := chimw.GetReqID(r.Context())
			ctx := observability.WithRequestID(r.Context(), reqID)
			if reqID != "" {
				w.Header().Set("X-Request-Id", reqID)
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			observability.LoggerFromContext(ctx).Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", clientip.FromRequest(r, trustProxy),
			)
		})
	}
}
