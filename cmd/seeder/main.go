package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"showreel/internal/config"
	"showreel/internal/pkg/logger"
	"showreel/internal/repository/postgres"
)

func main() {
	var (
		file   = flag.String("file", "", "JSON file holding an array of logos (required)")
		dryRun = flag.Bool("dry-run", false, "Validate and print what would be done without writing")
	)

	// Load configuration (parses flags)
	cfg := config.Load()

	// Validate required flags
	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file flag is required")
		flag.Usage()
		os.Exit(1)
	}

	// A dry run never touches the database
	if !*dryRun {
		if err := cfg.ValidateForSeeder(); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
	}

	// Setup logging
	log := logger.New(cfg.LogLevel)
	log.Info("Starting logo seeder...",
		"file", *file,
		"dry_run", *dryRun,
	)

	logos, err := loadLogos(*file)
	if err != nil {
		log.Error("Failed to load logo file", "error", err)
		os.Exit(1)
	}
	log.Info("Loaded logo file", "entries", len(logos))

	seeder := &Seeder{
		logger: log,
		dryRun: *dryRun,
	}

	if !*dryRun {
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
		log.Info("Successfully connected to database")

		seeder.store = postgres.NewDocumentStore(db, log)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Shutdown signal received, stopping seeder...")
		cancel()
	}()

	stats, err := seeder.Run(ctx, logos)
	if err != nil {
		log.Error("Seeder failed", "error", err)
		os.Exit(1)
	}

	log.Info("Seeding completed",
		"entries", stats.Entries,
		"created", stats.Created,
		"skipped", stats.Skipped,
		"invalid", stats.Invalid,
		"errors", stats.Errors,
	)
}
