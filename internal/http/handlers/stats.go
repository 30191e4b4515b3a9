package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"showreel/internal/domain"
)

type StatsHandler struct {
	logger *slog.Logger
	stats  domain.StatsRecorder
}

// StatsResponse is the body of GET /api/v1/stats
type StatsResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Counters  map[string]int64 `json:"counters"`
}

func NewStatsHandler(logger *slog.Logger, stats domain.StatsRecorder) *StatsHandler {
	return &StatsHandler{
		logger: logger,
		stats:  stats,
	}
}

func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	response := StatsResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Counters:  map[string]int64{},
	}

	counters, err := h.stats.Snapshot(r.Context())
	if err != nil {
		h.logger.Warn("Failed to read stats", "error", err)
		response.Status = "unavailable"
	} else {
		response.Counters = counters
	}

	writeJSON(w, h.logger, http.StatusOK, response)
}
