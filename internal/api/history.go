package api

import (
	"database/sql"
	"net/http"

	"stockroom/internal/model"
	"stockroom/internal/store"
)

// HistoryHandler serves the audit ledger.
type HistoryHandler struct {
	DB *sql.DB
}

// List handles GET /history. The full ledger is returned newest first;
// any filtering happens client-side.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListHistory(r.Context(), h.DB)
	if err != nil {
		jsonServerError(w, "failed to list history", err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}
