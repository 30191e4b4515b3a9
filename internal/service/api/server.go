package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"showreel/internal/config"
	apihttp "showreel/internal/http"
	"showreel/internal/http/middleware"
	"showreel/internal/service/portfolio"
)

// writeTimeout must outlast the slowest best-work run so the placeholder or
// partial result always reaches the client
const writeTimeout = portfolio.MaxRunDuration + 15*time.Second

// APIService handles HTTP API requests
type APIService struct {
	config *config.Config
	logger *slog.Logger

	// HTTP server
	server *http.Server
}

// New creates a new API service
func New(
	config *config.Config,
	logger *slog.Logger,
	deps apihttp.Dependencies,
) (*APIService, error) {
	if deps.Showcase == nil || deps.Store == nil || deps.Stats == nil {
		return nil, errors.New("showcase, store and stats dependencies are required")
	}

	router := apihttp.NewRouter(logger, deps)
	router.Use(middleware.RequestLogger(logger))

	apiService := &APIService{
		config: config,
		logger: logger,
	}

	// Create HTTP server
	apiService.server = &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return apiService, nil
}

// Handler exposes the fully wrapped handler
func (s *APIService) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving the API
func (s *APIService) Start() error {
	s.logger.Info("Starting API server", "port", s.config.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the API server
func (s *APIService) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
