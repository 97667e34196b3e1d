package server

import (
	"encoding/json"
	"net/http"

	"company-analyzer/internal/logger"
)

const noStore = "no-store"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NotFoundResponse is returned when a company name resolves to nothing.
type NotFoundResponse struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to write JSON response", err)
	}
}

// writeCached writes v with the configured long-lived Cache-Control.
func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Cache-Control", s.cfg.Server.CacheControl)
	writeJSON(w, r, http.StatusOK, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Cache-Control", noStore)
	writeJSON(w, r, status, body)
}
