package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/services"
)

type CreateJournalRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	Summarize bool   `json:"summarize"`
}

// CreateJournalResponse reports the saved entry. When summarize was requested
// and failed, SummaryError explains why; the entry is still saved.
type CreateJournalResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Journal      *models.JournalEntry `json:"journal"`
	Summary      *models.EntrySummary `json:"summary,omitempty"`
	SummaryError string               `json:"summary_error,omitempty"`
}

type GetJournalsResponse struct {
	Success  bool                      `json:"success"`
	Journals []models.EntryWithSummary `json:"journals"`
	Total    int64                     `json:"total"`
}

// SummaryResponse mirrors the stored summary fields at the top level.
type SummaryResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
}

// CreateJournal handles POST /api/journals. The owner is always the session user.
func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if !decode(w, r, &req) {
		return
	}
	uid := userID(r)
	entry, err := h.Journals.Create(r.Context(), uid, services.NewEntry{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	}, locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := CreateJournalResponse{
		Success: true,
		Message: translator(r).T("journal.created"),
		Journal: entry,
	}
	if req.Summarize {
		summary, err := h.Summaries.SummarizeEntry(r.Context(), uid, entry.ID, locale(r))
		if err != nil {
			resp.SummaryError = errorMessage(r, err)
		} else {
			resp.Summary = summary
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetJournals handles GET /api/journals?limit=&skip=.
func (h *Handler) GetJournals(w http.ResponseWriter, r *http.Request) {
	page, err := h.Journals.List(r.Context(), userID(r), queryInt(r, "limit", 0), queryInt(r, "skip", 0), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetJournalsResponse{Success: true, Journals: page.Entries, Total: page.Total})
}

// SummarizeJournal handles POST /api/journals/{id}/summarize.
func (h *Handler) SummarizeJournal(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Summaries.SummarizeEntry(r.Context(), userID(r), chi.URLParam(r, "id"), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		Success:    true,
		Message:    translator(r).T("journal.summarized"),
		Summary:    summary.Summary,
		Suggestion: summary.Suggestion,
	})
}

func errorMessage(r *http.Request, err error) string {
	var se *services.Error
	if errors.As(err, &se) {
		return se.Message
	}
	return translator(r).T("request.unexpected")
}
