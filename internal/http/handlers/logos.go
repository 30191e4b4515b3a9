package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"showreel/internal/domain"
)

const (
	DefaultLogoLimit = 50
)

type LogosHandler struct {
	logger *slog.Logger
	store  domain.DocumentStore
	stats  domain.StatsRecorder
}

// InsertedResponse is returned after a document is stored
type InsertedResponse struct {
	InsertedID string `json:"inserted_id"`
}

func NewLogosHandler(logger *slog.Logger, store domain.DocumentStore, stats domain.StatsRecorder) *LogosHandler {
	return &LogosHandler{
		logger: logger,
		store:  store,
		stats:  stats,
	}
}

// ListLogos returns stored logos. Storage errors yield an empty list.
func (h *LogosHandler) ListLogos(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLogoLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			writeDetail(w, h.logger, http.StatusUnprocessableEntity, "limit: must be an integer")
			return
		}
		limit = parsed
	}

	docs, err := h.store.Find(r.Context(), domain.LogoCollection, nil, limit)
	if err != nil {
		h.logger.Warn("Failed to list logos", "error", err)
		writeJSON(w, h.logger, http.StatusOK, []domain.Document{})
		return
	}

	h.logger.Debug("Listed logos", "count", len(docs), "limit", limit)
	writeJSON(w, h.logger, http.StatusOK, docs)
}

// CreateLogo validates and stores one logo
func (h *LogosHandler) CreateLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var logo domain.Logo
	if err := json.NewDecoder(r.Body).Decode(&logo); err != nil {
		writeDetail(w, h.logger, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if err := logo.Validate(); err != nil {
		writeDetail(w, h.logger, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := h.store.Insert(ctx, domain.LogoCollection, logo.Document())
	if err != nil {
		if errors.Is(err, domain.ErrDatabaseUnavailable) {
			writeDetail(w, h.logger, http.StatusInternalServerError, detailDatabaseUnavailable)
			return
		}
		h.logger.Error("Failed to create logo", "error", err, "name", logo.Name)
		writeDetail(w, h.logger, http.StatusInternalServerError, err.Error())
		return
	}

	h.stats.Incr(ctx, domain.StatLogosCreated)
	h.logger.Info("Logo created", "id", id, "name", logo.Name)
	writeJSON(w, h.logger, http.StatusOK, InsertedResponse{InsertedID: id})
}
