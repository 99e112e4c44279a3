package handlers

import (
	"net/http"

	"github.com/AnshRaj112/jurnal-backend/internal/services"
)

type DeleteAccountResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Deleted *services.DeletionReport `json:"deleted"`
}

// DeleteAccount handles DELETE /api/account and POST /api/account/delete.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	report, err := h.Accounts.Delete(r.Context(), userID(r), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteAccountResponse{
		Success: true,
		Message: translator(r).T("account.deleted"),
		Deleted: report,
	})
}
