package handlers

import (
	"net/http"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/services"
)

type MoodTrendResponse struct {
	Success bool `json:"success"`
	*services.MoodTrend
}

type OverviewResponse struct {
	Success bool `json:"success"`
	*services.Overview
}

// MoodOptionResponse is one selectable mood with its label in the request locale.
type MoodOptionResponse struct {
	Value models.Mood `json:"value"`
	Label string      `json:"label"`
	Color string      `json:"color"`
}

// GetMoodTrend handles GET /api/journals/moods.
func (h *Handler) GetMoodTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.Insights.MoodTrend(r.Context(), userID(r), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MoodTrendResponse{Success: true, MoodTrend: trend})
}

// GetOverview handles GET /api/overview.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	o, err := h.Insights.Overview(r.Context(), userID(r), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OverviewResponse{Success: true, Overview: o})
}

// GetMoods handles GET /api/moods. No session required.
func (h *Handler) GetMoods(w http.ResponseWriter, r *http.Request) {
	t := translator(r)
	options := models.MoodOptions()
	out := make([]MoodOptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, MoodOptionResponse{Value: o.Value, Label: t.T(o.Value.LabelKey()), Color: o.Color})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "moods": out})
}
