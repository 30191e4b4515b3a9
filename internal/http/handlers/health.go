package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"showreel/internal/domain"
)

type HealthHandler struct {
	logger             *slog.Logger
	store              domain.DocumentStore
	stats              domain.StatsRecorder
	databaseConfigured bool
	redisConfigured    bool
}

// DatabaseStatus is the /test diagnostic report
type DatabaseStatus struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	Redis            string   `json:"redis"`
	RedisURL         string   `json:"redis_url"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func NewHealthHandler(logger *slog.Logger, store domain.DocumentStore, stats domain.StatsRecorder, databaseConfigured, redisConfigured bool) *HealthHandler {
	return &HealthHandler{
		logger:             logger,
		store:              store,
		stats:              stats,
		databaseConfigured: databaseConfigured,
		redisConfigured:    redisConfigured,
	}
}

// HandleRoot reports that the backend is up
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Backend running",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleTest reports database and Redis connectivity. It always answers 200.
func (h *HealthHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := DatabaseStatus{
		Backend:          "✅ Running",
		Database:         "⚠️ Available but not initialized",
		DatabaseURL:      setOrNot(h.databaseConfigured),
		Redis:            "⚠️ Not configured",
		RedisURL:         setOrNot(h.redisConfigured),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if h.databaseConfigured {
		h.checkDatabase(ctx, &status)
	}

	if h.redisConfigured {
		if err := h.stats.Ping(ctx); err != nil {
			h.logger.Warn("Redis check failed", "error", err)
			status.Redis = "❌ Unreachable: " + truncate(err.Error(), 80)
		} else {
			status.Redis = "✅ Connected"
		}
	}

	writeJSON(w, h.logger, http.StatusOK, status)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, status *DatabaseStatus) {
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Database ping failed", "error", err)
		status.Database = "❌ Unreachable: " + truncate(err.Error(), 80)
		return
	}

	collections, err := h.store.Collections(ctx)
	if err != nil {
		h.logger.Warn("Database check failed", "error", err)
		status.Database = "⚠️ Connected but Error: " + truncate(err.Error(), 80)
		status.ConnectionStatus = "Connected"
		return
	}

	status.Collections = collections
	status.Database = "✅ Connected & Working"
	status.ConnectionStatus = "Connected"
}

func setOrNot(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
