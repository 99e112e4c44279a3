package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/jurnal-backend/internal/handlers"
	"github.com/AnshRaj112/jurnal-backend/internal/middleware"
)

// SetupRoutes registers the API on r. Expects middleware.Locale to run before it.
func SetupRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/health", h.Health)

	// Public
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/signin", h.Signin)
	r.Get("/api/moods", h.GetMoods)

	// Session required
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.Auth))

		r.Post("/api/auth/signout", h.Signout)
		r.Get("/api/auth/me", h.Me)
		r.Put("/api/auth/profile", h.UpdateProfile)

		// Journaling
		r.Post("/api/journals", h.CreateJournal)
		r.Get("/api/journals", h.GetJournals)
		r.Get("/api/journals/moods", h.GetMoodTrend)
		r.Post("/api/journals/{id}/summarize", h.SummarizeJournal)

		// Weekly recaps
		r.Post("/api/weekly/generate", h.GenerateWeekly)
		r.Get("/api/weekly", h.ListWeekly)

		r.Get("/api/overview", h.GetOverview)

		r.Delete("/api/account", h.DeleteAccount)
		r.Post("/api/account/delete", h.DeleteAccount)
	})
}
