package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"showreel/internal/domain"
)

// statsKey holds every counter as a hash field
const statsKey = "stats:showreel"

// StatsRepository implements domain.StatsRecorder with a Redis hash
type StatsRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStatsRepository creates a new Redis stats repository
func NewStatsRepository(client *redis.Client, logger *slog.Logger) *StatsRepository {
	return &StatsRepository{
		client: client,
		logger: logger,
	}
}

// Incr bumps a counter. Failures are logged and otherwise ignored so that
// stats never affect the request being counted.
func (r *StatsRepository) Incr(ctx context.Context, counter string) {
	if err := r.client.HIncrBy(ctx, statsKey, counter, 1).Err(); err != nil {
		r.logger.Warn("Failed to increment stats counter",
			"error", err,
			"counter", counter,
		)
	}
}

// Snapshot returns all counters
func (r *StatsRepository) Snapshot(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			r.logger.Warn("Skipping non-numeric stats field", "field", field, "value", value)
			continue
		}
		stats[field] = n
	}

	return stats, nil
}

// Ping checks the Redis connection
func (r *StatsRepository) Ping(ctx context.Context) error {
	return HealthCheck(ctx, r.client)
}

// NoopStats is used when Redis is not configured
type NoopStats struct{}

func (NoopStats) Incr(ctx context.Context, counter string) {}

func (NoopStats) Snapshot(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (NoopStats) Ping(ctx context.Context) error {
	return domain.ErrStatsDisabled
}
