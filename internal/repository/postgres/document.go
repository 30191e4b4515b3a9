package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"showreel/internal/domain"
)

// DocumentStore implements domain.DocumentStore on a JSONB table
type DocumentStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewDocumentStore creates a new PostgreSQL document store
func NewDocumentStore(db *sql.DB, logger *slog.Logger) *DocumentStore {
	return &DocumentStore{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Insert stores doc in collection with fresh created_at/updated_at timestamps
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	query := `
		INSERT INTO documents (id, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	// Timestamps live in their own columns
	data := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == "_id" || k == "created_at" || k == "updated_at" {
			continue
		}
		data[k] = v
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Failed to marshal document",
			"error", err,
			"collection", collection,
		)
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	id := uuid.New().String()
	now := s.now()

	_, err = s.db.ExecContext(ctx, query, id, collection, dataJSON, now, now)
	if err != nil {
		s.logger.Error("Failed to insert document",
			"error", err,
			"collection", collection,
		)
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	s.logger.Info("Document created successfully",
		"document_id", id,
		"collection", collection,
	)

	return id, nil
}

// Find returns documents in insertion order whose data contains filter
func (s *DocumentStore) Find(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]domain.Document, error) {
	if filter == nil {
		filter = map[string]interface{}{}
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter: %w", err)
	}

	query := `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND data @> $2::jsonb
		ORDER BY created_at ASC`
	args := []interface{}{collection, string(filterJSON)}
	if limit > 0 {
		query += `
		LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to query documents",
			"error", err,
			"collection", collection,
		)
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var (
			id                   string
			dataBytes            []byte
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &dataBytes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc := domain.Document{}
		if len(dataBytes) > 0 {
			if err := json.Unmarshal(dataBytes, &doc); err != nil {
				s.logger.Warn("Failed to unmarshal document data",
					"error", err,
					"document_id", id,
					"data_bytes", string(dataBytes),
				)
				// Use empty document if unmarshaling fails
				doc = domain.Document{}
			}
		}

		doc["_id"] = id
		doc["created_at"] = createdAt.UTC().Format(time.RFC3339Nano)
		doc["updated_at"] = updatedAt.UTC().Format(time.RFC3339Nano)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	s.logger.Debug("Documents found",
		"collection", collection,
		"count", len(docs),
	)

	return docs, nil
}

// Collections lists the distinct collection names in use
func (s *DocumentStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, name)
	}
	return collections, rows.Err()
}

// Ping checks the database connection
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UnavailableStore stands in when no database is configured.
// Every operation fails with domain.ErrDatabaseUnavailable.
type UnavailableStore struct{}

func (UnavailableStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	return "", domain.ErrDatabaseUnavailable
}

func (UnavailableStore) Find(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]domain.Document, error) {
	return nil, domain.ErrDatabaseUnavailable
}

func (UnavailableStore) Collections(ctx context.Context) ([]string, error) {
	return nil, domain.ErrDatabaseUnavailable
}

func (UnavailableStore) Ping(ctx context.Context) error {
	return domain.ErrDatabaseUnavailable
}
