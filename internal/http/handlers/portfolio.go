package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"showreel/internal/domain"
	"showreel/internal/service/portfolio"
)

// ShowcaseService builds showcase items
type ShowcaseService interface {
	BestWork(ctx context.Context) portfolio.Report
	RefreshMetrics(ctx context.Context, videoURL string, manualRetention *float64) (domain.WorkItem, bool, error)
}

type PortfolioHandler struct {
	logger   *slog.Logger
	showcase ShowcaseService
	stats    domain.StatsRecorder
}

// MetricsRequest is the body of POST /api/youtube/metrics
type MetricsRequest struct {
	URL                string   `json:"url"`
	ManualRetentionPct *float64 `json:"manual_retention_pct"`
}

func NewPortfolioHandler(logger *slog.Logger, showcase ShowcaseService, stats domain.StatsRecorder) *PortfolioHandler {
	return &PortfolioHandler{
		logger:   logger,
		showcase: showcase,
		stats:    stats,
	}
}

// GetBestWork returns the showcase list. Source failures degrade to
// placeholders inside the service, so this always answers 200.
func (h *PortfolioHandler) GetBestWork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report := h.showcase.BestWork(ctx)

	h.stats.Incr(ctx, domain.StatBestWorkRequests)
	if report.Fallback {
		h.stats.Incr(ctx, domain.StatBestWorkFallbacks)
	}
	for i := 0; i < report.Enriched; i++ {
		h.stats.Incr(ctx, domain.StatBestWorkEnrichedItems)
	}

	h.logger.Info("Served best work",
		"count", len(report.Items),
		"fallback", report.Fallback,
		"enriched", report.Enriched,
	)
	writeJSON(w, h.logger, http.StatusOK, report.Items)
}

// RefreshMetrics enriches a single YouTube URL
func (h *PortfolioHandler) RefreshMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, h.logger, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if err := domain.ValidateHTTPURL(req.URL); err != nil {
		writeDetail(w, h.logger, http.StatusUnprocessableEntity, "url: "+err.Error())
		return
	}

	h.stats.Incr(ctx, domain.StatMetricsRequests)

	item, enriched, err := h.showcase.RefreshMetrics(ctx, req.URL, req.ManualRetentionPct)
	if err != nil {
		if errors.Is(err, portfolio.ErrInvalidVideoURL) {
			h.stats.Incr(ctx, domain.StatMetricsRejected)
			h.logger.Info("Rejected metrics refresh", "url", req.URL)
			writeDetail(w, h.logger, http.StatusBadRequest, detailInvalidVideoURL)
			return
		}
		h.logger.Error("Failed to refresh metrics", "error", err, "url", req.URL)
		writeDetail(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	if enriched {
		h.stats.Incr(ctx, domain.StatMetricsEnriched)
	}

	writeJSON(w, h.logger, http.StatusOK, item)
}
