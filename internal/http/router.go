package http

import (
	"log/slog"
	"net/http"

	"showreel/internal/domain"
	"showreel/internal/http/handlers"
	"showreel/internal/http/middleware"
)

// Middleware represents a HTTP middleware function
type Middleware func(http.Handler) http.Handler

// Dependencies are the collaborators the handlers need
type Dependencies struct {
	Showcase           handlers.ShowcaseService
	Store              domain.DocumentStore
	Stats              domain.StatsRecorder
	DriveEmbedURL      string
	DatabaseConfigured bool
	RedisConfigured    bool
}

type Router struct {
	mux              *http.ServeMux
	middleware       []Middleware
	healthHandler    *handlers.HealthHandler
	statsHandler     *handlers.StatsHandler
	portfolioHandler *handlers.PortfolioHandler
	logosHandler     *handlers.LogosHandler
	driveHandler     *handlers.DriveHandler
}

func NewRouter(logger *slog.Logger, deps Dependencies) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		healthHandler:    handlers.NewHealthHandler(logger, deps.Store, deps.Stats, deps.DatabaseConfigured, deps.RedisConfigured),
		statsHandler:     handlers.NewStatsHandler(logger, deps.Stats),
		portfolioHandler: handlers.NewPortfolioHandler(logger, deps.Showcase, deps.Stats),
		logosHandler:     handlers.NewLogosHandler(logger, deps.Store, deps.Stats),
		driveHandler:     handlers.NewDriveHandler(logger, deps.DriveEmbedURL),
	}
}

// Use adds middleware to the router. Middleware runs in the order added.
func (r *Router) Use(middleware ...Middleware) {
	r.middleware = append(r.middleware, middleware...)
}

func (r *Router) SetupRoutes() http.Handler {
	// Health and diagnostics
	r.mux.HandleFunc("GET /{$}", r.healthHandler.HandleRoot)
	r.mux.HandleFunc("GET /health", r.healthHandler.HandleHealth)
	r.mux.HandleFunc("GET /test", r.healthHandler.HandleTest)

	// Showcase
	r.mux.HandleFunc("GET /api/notion/best-work", r.portfolioHandler.GetBestWork)
	r.mux.HandleFunc("POST /api/youtube/metrics", r.portfolioHandler.RefreshMetrics)

	// Logos
	r.mux.HandleFunc("GET /api/logos", r.logosHandler.ListLogos)
	r.mux.HandleFunc("POST /api/logos", r.logosHandler.CreateLogo)

	// Drive
	r.mux.HandleFunc("GET /api/drive/embed", r.driveHandler.GetEmbed)

	// API v1 routes - Stats
	r.mux.HandleFunc("GET /api/v1/stats", r.statsHandler.HandleStats)

	// Wrap in reverse order so the first middleware added runs first
	var h http.Handler = r.mux
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}

	// CORS outermost so preflight requests never reach the mux
	return middleware.CORS(h)
}
