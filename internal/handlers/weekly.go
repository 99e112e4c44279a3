package handlers

import (
	"net/http"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/services"
)

type WeeklyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*services.WeeklyResult
}

type WeeklyListResponse struct {
	Success bool                 `json:"success"`
	Recaps  []models.WeeklyRecap `json:"recaps"`
}

// GenerateWeekly handles POST /api/weekly/generate.
func (h *Handler) GenerateWeekly(w http.ResponseWriter, r *http.Request) {
	result, err := h.Weekly.Generate(r.Context(), userID(r), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	msg := translator(r).T("weekly.generated")
	if result.FromCache {
		msg = translator(r).T("weekly.cached")
	}
	writeJSON(w, http.StatusOK, WeeklyResponse{Success: true, Message: msg, WeeklyResult: result})
}

// ListWeekly handles GET /api/weekly?limit=.
func (h *Handler) ListWeekly(w http.ResponseWriter, r *http.Request) {
	recaps, err := h.Weekly.List(r.Context(), userID(r), queryInt(r, "limit", 0), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if recaps == nil {
		recaps = []models.WeeklyRecap{}
	}
	writeJSON(w, http.StatusOK, WeeklyListResponse{Success: true, Recaps: recaps})
}
