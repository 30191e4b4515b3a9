package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"showreel/internal/domain"
)

// Seeder writes logo documents into the document store
type Seeder struct {
	store  domain.DocumentStore
	logger *slog.Logger
	dryRun bool
}

// SeedingStats tracks statistics for the seeding process
type SeedingStats struct {
	Entries int
	Created int
	Skipped int
	Invalid int
	Errors  int
}

// loadLogos reads a JSON array of logos from path
func loadLogos(path string) ([]domain.Logo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return decodeLogos(f)
}

func decodeLogos(r io.Reader) ([]domain.Logo, error) {
	var logos []domain.Logo
	if err := json.NewDecoder(r).Decode(&logos); err != nil {
		return nil, fmt.Errorf("failed to decode logos: %w", err)
	}
	return logos, nil
}

// Run validates every logo and inserts the ones not already stored.
// A logo counts as stored when a document with the same name and image_url exists.
func (s *Seeder) Run(ctx context.Context, logos []domain.Logo) (*SeedingStats, error) {
	stats := &SeedingStats{}

	for i := range logos {
		// Check for cancellation
		select {
		case <-ctx.Done():
			s.logger.Warn("Context cancelled, stopping seeder")
			return stats, ctx.Err()
		default:
		}

		logo := logos[i]
		stats.Entries++

		if err := logo.Validate(); err != nil {
			s.logger.Warn("Skipping invalid logo",
				"index", i,
				"name", logo.Name,
				"error", err,
			)
			stats.Invalid++
			continue
		}

		if s.dryRun {
			s.logger.Info("[DRY RUN] Would create logo",
				"name", logo.Name,
				"image_url", logo.ImageURL,
			)
			stats.Created++
			continue
		}

		if err := s.seedLogo(ctx, &logo, stats); err != nil {
			if errors.Is(err, domain.ErrDatabaseUnavailable) {
				return stats, err
			}
			s.logger.Error("Failed to seed logo",
				"error", err,
				"name", logo.Name,
			)
			stats.Errors++
		}
	}

	return stats, nil
}

func (s *Seeder) seedLogo(ctx context.Context, logo *domain.Logo, stats *SeedingStats) error {
	existing, err := s.store.Find(ctx, domain.LogoCollection, map[string]interface{}{
		"name":      logo.Name,
		"image_url": logo.ImageURL,
	}, 1)
	if err != nil {
		return fmt.Errorf("failed to look up logo: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug("Logo already exists, skipping",
			"id", existing[0]["_id"],
			"name", logo.Name,
		)
		stats.Skipped++
		return nil
	}

	id, err := s.store.Insert(ctx, domain.LogoCollection, logo.Document())
	if err != nil {
		return fmt.Errorf("failed to insert logo: %w", err)
	}

	s.logger.Info("Created logo", "id", id, "name", logo.Name)
	stats.Created++
	return nil
}
