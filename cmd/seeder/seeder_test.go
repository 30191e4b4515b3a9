package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showreel/internal/domain"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

type memoryStore struct {
	docs    []domain.Document
	findErr error
}

func (m *memoryStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	stored := domain.Document{"_id": "id"}
	for k, v := range doc {
		stored[k] = v
	}
	m.docs = append(m.docs, stored)
	return "id", nil
}

func (m *memoryStore) Find(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]domain.Document, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []domain.Document
	for _, doc := range m.docs {
		match := true
		for k, v := range filter {
			if doc[k] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *memoryStore) Collections(ctx context.Context) ([]string, error) { return nil, nil }

func (m *memoryStore) Ping(ctx context.Context) error { return nil }

func TestDecodeLogos(t *testing.T) {
	logos, err := decodeLogos(strings.NewReader(`[
		{"name": "Acme", "image_url": "https://cdn.example.com/acme.png"},
		{"name": "Globex", "image_url": "https://cdn.example.com/globex.png", "link_url": "https://globex.example.com"}
	]`))
	require.NoError(t, err)
	require.Len(t, logos, 2)
	assert.Nil(t, logos[0].LinkURL)
	require.NotNil(t, logos[1].LinkURL)
	assert.Equal(t, "https://globex.example.com", *logos[1].LinkURL)

	_, err = decodeLogos(strings.NewReader(`{"name": "not an array"}`))
	assert.Error(t, err)
}

func TestLoadLogosMissingFile(t *testing.T) {
	_, err := loadLogos(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSeederRun(t *testing.T) {
	logos := []domain.Logo{
		{Name: "Acme", ImageURL: "https://cdn.example.com/acme.png"},
		{Name: "", ImageURL: "https://cdn.example.com/blank.png"},
		{Name: "Acme", ImageURL: "https://cdn.example.com/acme.png"},
		{Name: "Bad", ImageURL: "ftp://cdn.example.com/bad.png"},
	}

	t.Run("inserts valid logos once", func(t *testing.T) {
		store := &memoryStore{}
		seeder := &Seeder{store: store, logger: createTestLogger()}

		stats, err := seeder.Run(context.Background(), logos)
		require.NoError(t, err)

		assert.Equal(t, 4, stats.Entries)
		assert.Equal(t, 1, stats.Created)
		assert.Equal(t, 1, stats.Skipped)
		assert.Equal(t, 2, stats.Invalid)
		assert.Len(t, store.docs, 1)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		seeder := &Seeder{logger: createTestLogger(), dryRun: true}

		stats, err := seeder.Run(context.Background(), logos)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Created)
		assert.Equal(t, 2, stats.Invalid)
	})

	t.Run("unavailable database aborts", func(t *testing.T) {
		store := &memoryStore{findErr: domain.ErrDatabaseUnavailable}
		seeder := &Seeder{store: store, logger: createTestLogger()}

		_, err := seeder.Run(context.Background(), logos)
		assert.ErrorIs(t, err, domain.ErrDatabaseUnavailable)
	})

	t.Run("cancelled context stops early", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		seeder := &Seeder{store: &memoryStore{}, logger: createTestLogger()}

		stats, err := seeder.Run(ctx, logos)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, stats.Entries)
	})
}
