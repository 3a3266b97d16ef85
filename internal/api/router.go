package api

import (
	"database/sql"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db, Validate: validator.New()}
	historyHandler := &HistoryHandler{DB: db}

	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.HandleFunc("POST /items", itemsHandler.Create)
	mux.HandleFunc("PUT /items", itemsHandler.Adjust)
	mux.HandleFunc("PUT /items/update", itemsHandler.Edit)
	mux.HandleFunc("DELETE /items", itemsHandler.Delete)

	mux.HandleFunc("GET /history", historyHandler.List)

	return mux
}
