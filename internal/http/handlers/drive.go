package handlers

import (
	"log/slog"
	"net/http"
)

type DriveHandler struct {
	logger   *slog.Logger
	embedURL string
}

func NewDriveHandler(logger *slog.Logger, embedURL string) *DriveHandler {
	return &DriveHandler{
		logger:   logger,
		embedURL: embedURL,
	}
}

// GetEmbed returns the public embeddable folder URL
func (h *DriveHandler) GetEmbed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"embed_url": h.embedURL})
}
