package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// User-facing error details
const (
	detailInvalidVideoURL     = "Invalid YouTube URL"
	detailDatabaseUnavailable = "Database not available. Check DATABASE_URL environment variable."
)

// errorResponse is the error body shape used by every endpoint
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes data as a JSON response with the given status
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeDetail writes a {"detail": ...} error response
func writeDetail(w http.ResponseWriter, logger *slog.Logger, status int, detail string) {
	writeJSON(w, logger, status, errorResponse{Detail: detail})
}
