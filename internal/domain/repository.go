package domain

import (
	"context"
	"errors"
)

var (
	// ErrDatabaseUnavailable is returned by the document store when no database is configured
	ErrDatabaseUnavailable = errors.New("database not available")

	// ErrValidation marks client input that failed validation
	ErrValidation = errors.New("validation failed")

	// ErrStatsDisabled is returned by Ping when no stats backend is configured
	ErrStatsDisabled = errors.New("stats backend not configured")
)

// Document is a stored record. Reads always include "_id", "created_at" and "updated_at".
type Document map[string]interface{}

// DocumentStore defines generic insert/query operations keyed by collection name
type DocumentStore interface {
	// Insert stores a document and returns its generated ID
	Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error)

	// Find returns documents matching filter. A limit <= 0 returns all matches.
	Find(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]Document, error)

	// Collections lists collection names that hold at least one document
	Collections(ctx context.Context) ([]string, error)

	// Ping checks connectivity
	Ping(ctx context.Context) error
}

// StatsRecorder counts request outcomes for the stats endpoint
type StatsRecorder interface {
	Incr(ctx context.Context, counter string)
	Snapshot(ctx context.Context) (map[string]int64, error)

	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error
}

// Stats counters
const (
	StatBestWorkRequests      = "best_work_requests"
	StatBestWorkFallbacks     = "best_work_fallbacks"
	StatBestWorkEnrichedItems = "best_work_enriched_items"
	StatMetricsRequests       = "metrics_requests"
	StatMetricsEnriched       = "metrics_enriched"
	StatMetricsRejected       = "metrics_rejected"
	StatLogosCreated          = "logos_created"
)
