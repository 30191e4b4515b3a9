package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showreel/internal/domain"
	"showreel/internal/service/portfolio"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

type fakeShowcase struct {
	report      portfolio.Report
	gotURL      string
	gotRetained *float64
}

func (f *fakeShowcase) BestWork(ctx context.Context) portfolio.Report {
	return f.report
}

func (f *fakeShowcase) RefreshMetrics(ctx context.Context, videoURL string, manualRetention *float64) (domain.WorkItem, bool, error) {
	f.gotURL = videoURL
	f.gotRetained = manualRetention
	if !strings.Contains(videoURL, "youtu") {
		return domain.WorkItem{}, false, portfolio.ErrInvalidVideoURL
	}
	return domain.WorkItem{
		Title:      "Refreshed",
		YouTubeURL: &videoURL,
		Metrics:    domain.Metric{AvgRetention: manualRetention},
	}, true, nil
}

type fakeStore struct {
	docs     []domain.Document
	err      error
	pingErr  error
	inserted []map[string]interface{}
	limit    int
}

func (s *fakeStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.inserted = append(s.inserted, doc)
	return "doc-1", nil
}

func (s *fakeStore) Find(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]domain.Document, error) {
	s.limit = limit
	return s.docs, s.err
}

func (s *fakeStore) Collections(ctx context.Context) ([]string, error) {
	return []string{"logo"}, s.err
}

func (s *fakeStore) Ping(ctx context.Context) error { return s.pingErr }

type fakeStats struct {
	counts  map[string]int64
	pingErr error
}

func (s *fakeStats) Incr(ctx context.Context, counter string) { s.counts[counter]++ }

func (s *fakeStats) Snapshot(ctx context.Context) (map[string]int64, error) {
	return s.counts, nil
}

func (s *fakeStats) Ping(ctx context.Context) error { return s.pingErr }

type testEnv struct {
	handler  http.Handler
	showcase *fakeShowcase
	store    *fakeStore
	stats    *fakeStats
}

func newTestEnv(databaseConfigured bool) *testEnv {
	return newTestEnvWithRedis(databaseConfigured, false)
}

func newTestEnvWithRedis(databaseConfigured, redisConfigured bool) *testEnv {
	env := &testEnv{
		showcase: &fakeShowcase{},
		store:    &fakeStore{},
		stats:    &fakeStats{counts: map[string]int64{}},
	}
	router := NewRouter(createTestLogger(), Dependencies{
		Showcase:           env.showcase,
		Store:              env.store,
		Stats:              env.stats,
		DriveEmbedURL:      "https://drive.google.com/embeddedfolderview?id=abc#grid",
		DatabaseConfigured: databaseConfigured,
		RedisConfigured:    redisConfigured,
	})
	env.handler = router.SetupRoutes()
	return env
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(false)

	rec := env.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var root map[string]string
	decode(t, rec, &root)
	assert.Equal(t, "Backend running", root["message"])
	assert.NotEmpty(t, root["time"])

	rec = env.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatabaseTestEndpoint(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(false)
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Equal(t, "❌ Not Set", status["database_url"])
		assert.Equal(t, "Not Connected", status["connection_status"])
	})

	t.Run("connected", func(t *testing.T) {
		env := newTestEnv(true)
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Equal(t, "✅ Set", status["database_url"])
		assert.Equal(t, "Connected", status["connection_status"])
		assert.Equal(t, []interface{}{"logo"}, status["collections"])
	})

	t.Run("query error", func(t *testing.T) {
		env := newTestEnv(true)
		env.store.err = errors.New("relation documents does not exist")
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Contains(t, status["database"], "Connected but Error")
	})

	t.Run("ping failure skips collections", func(t *testing.T) {
		env := newTestEnv(true)
		env.store.pingErr = errors.New("dial tcp: connection refused")
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Contains(t, status["database"], "Unreachable")
		assert.Equal(t, "Not Connected", status["connection_status"])
		assert.Equal(t, []interface{}{}, status["collections"])
	})

	t.Run("redis not configured", func(t *testing.T) {
		env := newTestEnv(false)
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Equal(t, "❌ Not Set", status["redis_url"])
		assert.Equal(t, "⚠️ Not configured", status["redis"])
	})

	t.Run("redis reachable", func(t *testing.T) {
		env := newTestEnvWithRedis(false, true)
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Equal(t, "✅ Set", status["redis_url"])
		assert.Equal(t, "✅ Connected", status["redis"])
	})

	t.Run("redis unreachable", func(t *testing.T) {
		env := newTestEnvWithRedis(false, true)
		env.stats.pingErr = errors.New("i/o timeout")
		var status map[string]interface{}
		decode(t, env.do(http.MethodGet, "/test", ""), &status)
		assert.Equal(t, "❌ Unreachable: i/o timeout", status["redis"])
	})
}

func TestBestWorkEndpoint(t *testing.T) {
	env := newTestEnv(false)
	pageURL := "https://example.notion.site/page"
	env.showcase.report = portfolio.Report{
		Items:    []domain.WorkItem{{Title: "Case Study Placeholder 1", YouTubeURL: &pageURL}},
		Fallback: true,
	}

	rec := env.do(http.MethodGet, "/api/notion/best-work", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]interface{}
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Case Study Placeholder 1", items[0]["title"])
	assert.Contains(t, items[0], "channel")
	assert.Nil(t, items[0]["channel"])

	metrics := items[0]["metrics"].(map[string]interface{})
	assert.Contains(t, metrics, "views")
	assert.Nil(t, metrics["views"])

	assert.Equal(t, int64(1), env.stats.counts[domain.StatBestWorkRequests])
	assert.Equal(t, int64(1), env.stats.counts[domain.StatBestWorkFallbacks])
}

func TestMetricsEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
	}{
		{"malformed body", `{"url":`, http.StatusUnprocessableEntity, "Invalid request body"},
		{"missing url", `{}`, http.StatusUnprocessableEntity, "url: empty URL"},
		{"not a url", `{"url":"youtube"}`, http.StatusUnprocessableEntity, ""},
		{"no video id", `{"url":"https://example.com/video"}`, http.StatusBadRequest, "Invalid YouTube URL"},
		{"ok", `{"url":"https://youtu.be/abcdef1","manual_retention_pct":52.5}`, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(false)
			rec := env.do(http.MethodPost, "/api/youtube/metrics", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantDetail != "" {
				var body map[string]string
				decode(t, rec, &body)
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
		})
	}

	env := newTestEnv(false)
	rec := env.do(http.MethodPost, "/api/youtube/metrics", `{"url":"https://youtu.be/abcdef1","manual_retention_pct":52.5}`)
	var item domain.WorkItem
	decode(t, rec, &item)
	assert.Equal(t, "Refreshed", item.Title)
	require.NotNil(t, item.Metrics.AvgRetention)
	assert.Equal(t, 52.5, *item.Metrics.AvgRetention)
	assert.Equal(t, int64(1), env.stats.counts[domain.StatMetricsEnriched])
}

func TestLogosEndpoints(t *testing.T) {
	t.Run("list uses default limit", func(t *testing.T) {
		env := newTestEnv(true)
		env.store.docs = []domain.Document{{"_id": "a", "name": "Acme"}}

		rec := env.do(http.MethodGet, "/api/logos", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var docs []map[string]interface{}
		decode(t, rec, &docs)
		assert.Equal(t, "Acme", docs[0]["name"])
		assert.Equal(t, 50, env.store.limit)
	})

	t.Run("list with limit", func(t *testing.T) {
		env := newTestEnv(true)
		env.do(http.MethodGet, "/api/logos?limit=5", "")
		assert.Equal(t, 5, env.store.limit)

		rec := env.do(http.MethodGet, "/api/logos?limit=many", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("list degrades to empty", func(t *testing.T) {
		env := newTestEnv(false)
		env.store.err = domain.ErrDatabaseUnavailable

		rec := env.do(http.MethodGet, "/api/logos", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("create", func(t *testing.T) {
		env := newTestEnv(true)

		rec := env.do(http.MethodPost, "/api/logos", `{"name":"Acme","image_url":"https://cdn.example.com/a.png"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"inserted_id":"doc-1"}`, rec.Body.String())
		require.Len(t, env.store.inserted, 1)
		assert.Equal(t, "Acme", env.store.inserted[0]["name"])
		assert.Equal(t, int64(1), env.stats.counts[domain.StatLogosCreated])
	})

	t.Run("create validation", func(t *testing.T) {
		env := newTestEnv(true)

		rec := env.do(http.MethodPost, "/api/logos", `{"name":"Acme","image_url":"nope"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, env.store.inserted)
	})

	t.Run("create without database", func(t *testing.T) {
		env := newTestEnv(false)
		env.store.err = domain.ErrDatabaseUnavailable

		rec := env.do(http.MethodPost, "/api/logos", `{"name":"Acme","image_url":"https://cdn.example.com/a.png"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]string
		decode(t, rec, &body)
		assert.Equal(t, "Database not available. Check DATABASE_URL environment variable.", body["detail"])
	})
}

func TestDriveAndStatsEndpoints(t *testing.T) {
	env := newTestEnv(false)

	rec := env.do(http.MethodGet, "/api/drive/embed", "")
	assert.JSONEq(t, `{"embed_url":"https://drive.google.com/embeddedfolderview?id=abc#grid"}`, rec.Body.String())

	env.stats.counts[domain.StatLogosCreated] = 3
	rec = env.do(http.MethodGet, "/api/v1/stats", "")
	var stats map[string]interface{}
	decode(t, rec, &stats)
	assert.Equal(t, "ok", stats["status"])
	assert.Equal(t, float64(3), stats["counters"].(map[string]interface{})[domain.StatLogosCreated])
}

func TestPreflightAndMethodMismatch(t *testing.T) {
	env := newTestEnv(false)

	rec := env.do(http.MethodOptions, "/api/logos", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = env.do(http.MethodDelete, "/api/logos", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	router := NewRouter(createTestLogger(), Dependencies{Stats: &fakeStats{counts: map[string]int64{}}})
	router.Use(mw("first"), mw("second"))
	handler := router.SetupRoutes()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, []string{"first", "second"}, order)
}
