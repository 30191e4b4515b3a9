package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"showreel/internal/config"
	"showreel/internal/domain"
	apihttp "showreel/internal/http"
	"showreel/internal/pkg/logger"
	"showreel/internal/pkg/urldetector"
	"showreel/internal/repository/postgres"
	"showreel/internal/repository/redis"
	"showreel/internal/service/api"
	"showreel/internal/service/portfolio"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate API-specific configuration
	if err := cfg.ValidateForAPI(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log := logger.New(cfg.LogLevel)
	log.Info("Starting API service...")

	// Document store. The service still runs without a database; logo
	// endpoints then degrade.
	var store domain.DocumentStore = postgres.UnavailableStore{}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Error("Failed to ping database", "error", err)
			os.Exit(1)
		}

		if err := postgres.RunMigrations(db, log); err != nil {
			log.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}

		store = postgres.NewDocumentStore(db, log)
		log.Info("Document store ready")
	} else {
		log.Warn("DATABASE_URL not set, logo endpoints will be unavailable")
	}

	// Stats recorder
	var stats domain.StatsRecorder = redis.NoopStats{}
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL, log)
		if err != nil {
			log.Warn("Redis unavailable, stats disabled", "error", err)
		} else {
			defer redisClient.Close()
			stats = redis.NewStatsRepository(redisClient, log)
		}
	}

	if !cfg.HasYouTubeAPIKey() {
		log.Warn("YOUTUBE_API_KEY not set, showcase items will not be enriched")
	}

	showcase := portfolio.NewService(
		cfg.NotionPageURL,
		portfolio.NewHTTPPageFetcher(),
		urldetector.New(cfg.LinkExtractor),
		portfolio.NewYouTubeResolver(cfg.YouTubeAPIKey, cfg.YouTubeAPIBaseURL, log),
		log,
	)
	log.Info("Showcase pipeline initialized",
		"page_url", cfg.NotionPageURL,
		"link_extractor", cfg.LinkExtractor,
	)

	// Create API service
	apiService, err := api.New(cfg, log, apihttp.Dependencies{
		Showcase:           showcase,
		Store:              store,
		Stats:              stats,
		DriveEmbedURL:      cfg.DriveEmbedURL(),
		DatabaseConfigured: cfg.DatabaseURL != "",
		RedisConfigured:    cfg.RedisURL != "",
	})
	if err != nil {
		log.Error("Failed to create API service", "error", err)
		os.Exit(1)
	}

	// Create a channel to track shutdown completion
	done := make(chan struct{})

	// Start API service in a goroutine
	go func() {
		defer close(done)
		if err := apiService.Start(); err != nil {
			log.Error("API service failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either shutdown signal or service completion
	select {
	case <-quit:
		log.Info("Shutdown signal received, stopping API service...")
	case <-done:
		log.Info("API service completed")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiService.Stop(ctx); err != nil {
		log.Error("Error stopping API service", "error", err)
	}

	log.Info("API service shutdown complete")
}
