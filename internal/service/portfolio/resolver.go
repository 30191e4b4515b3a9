package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"showreel/internal/domain"
)

// YouTubeResolver looks up video details through the YouTube Data API v3
type YouTubeResolver struct {
	apiKey     string
	baseURL    string
	logger     *slog.Logger
	httpClient *http.Client
}

// videosResponse is the part of the videos.list response we read
// See: https://developers.google.com/youtube/v3/docs/videos/list
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			// Documented as a numeric string; decoded loosely so an odd
			// value nulls the view count instead of failing the lookup
			ViewCount interface{} `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// NewYouTubeResolver creates a resolver. An empty apiKey disables lookups.
func NewYouTubeResolver(apiKey, baseURL string, logger *slog.Logger) *YouTubeResolver {
	return &YouTubeResolver{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: outboundTimeout,
		},
	}
}

// Lookup returns enrichment data for videoID. ok is false when there is no
// ID, no API key, or the call failed in any way; failures are logged, never returned.
func (r *YouTubeResolver) Lookup(ctx context.Context, videoID string) (domain.Enrichment, bool) {
	if videoID == "" || r.apiKey == "" {
		return domain.Enrichment{}, false
	}

	data, err := r.fetchVideo(ctx, videoID)
	if err != nil {
		r.logger.Warn("YouTube metadata lookup failed",
			"video_id", videoID,
			"error", err,
		)
		return domain.Enrichment{}, false
	}

	if len(data.Items) == 0 {
		r.logger.Debug("YouTube returned no items", "video_id", videoID)
		return domain.Enrichment{}, false
	}

	item := data.Items[0]
	enrichment := domain.Enrichment{
		Title:        domain.StringPtr(item.Snippet.Title),
		Channel:      domain.StringPtr(item.Snippet.ChannelTitle),
		ThumbnailURL: domain.StringPtr(item.Snippet.Thumbnails.High.URL),
		UploadDate:   domain.StringPtr(item.Snippet.PublishedAt),
		Views:        parseViewCount(item.Statistics.ViewCount),
	}

	r.logger.Debug("YouTube metadata lookup successful",
		"video_id", videoID,
		"title", item.Snippet.Title,
	)

	return enrichment, true
}

// buildVideosURL constructs the videos.list request URL
func (r *YouTubeResolver) buildVideosURL(videoID string) (string, error) {
	baseURL, err := url.Parse(r.baseURL + "/videos")
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}

	query := baseURL.Query()
	query.Set("part", "snippet,statistics")
	query.Set("id", videoID)
	query.Set("key", r.apiKey)
	baseURL.RawQuery = query.Encode()

	return baseURL.String(), nil
}

func (r *YouTubeResolver) fetchVideo(ctx context.Context, videoID string) (*videosResponse, error) {
	apiURL, err := r.buildVideosURL(videoID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// The request URL carries the API key; keep it out of the logs
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("HTTP request failed: %w", urlErr.Err)
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("HTTP error: %d %s (body: %s)", resp.StatusCode, resp.Status, string(body))
	}

	var data videosResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &data, nil
}

// parseViewCount accepts the API's numeric string (or a bare number) and
// returns nil for anything absent or non-numeric
func parseViewCount(v interface{}) *int64 {
	switch count := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
		if err != nil {
			return nil
		}
		return &n
	case float64:
		n := int64(count)
		if float64(n) != count {
			return nil
		}
		return &n
	default:
		return nil
	}
}
