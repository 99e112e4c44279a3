package middleware

import (
	"net/http"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
)

// Locale picks the response language: X-Locale header, then ?locale=, then
// Accept-Language, else the default. Unsupported values fall through to the next source.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), requestLocale(r))))
	})
}

func requestLocale(r *http.Request) i18n.Locale {
	for _, tag := range []string{r.Header.Get("X-Locale"), r.URL.Query().Get("locale")} {
		if tag == "" {
			continue
		}
		if l, ok := i18n.FromAcceptLanguage(tag); ok {
			return l
		}
	}
	if l, ok := i18n.FromAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return l
	}
	return i18n.Default
}
