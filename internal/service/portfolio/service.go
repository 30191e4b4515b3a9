package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"showreel/internal/domain"
	"showreel/internal/pkg/urldetector"
)

// placeholderCount is the size of the fallback showcase
const placeholderCount = 3

// MaxRunDuration bounds one BestWork run: the page fetch plus one lookup per link
const MaxRunDuration = (urldetector.MaxLinks + 1) * outboundTimeout

// ErrInvalidVideoURL is returned by RefreshMetrics when no video ID can be derived
var ErrInvalidVideoURL = errors.New("invalid youtube url")

// PageFetcher retrieves raw page text
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// MetadataResolver returns enrichment data for a video ID, or ok=false
type MetadataResolver interface {
	Lookup(ctx context.Context, videoID string) (domain.Enrichment, bool)
}

// Report is the outcome of one best-work run
type Report struct {
	Items []domain.WorkItem

	// Fallback is true when the placeholder showcase was returned
	Fallback bool

	// Enriched counts items that received YouTube data
	Enriched int
}

// Service builds the best-work showcase from the configured page.
// Each call is independent; the service keeps no state between runs.
type Service struct {
	pageURL   string
	fetcher   PageFetcher
	extractor urldetector.Extractor
	resolver  MetadataResolver
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a showcase service reading links from pageURL
func NewService(
	pageURL string,
	fetcher PageFetcher,
	extractor urldetector.Extractor,
	resolver MetadataResolver,
	logger *slog.Logger,
) *Service {
	return &Service{
		pageURL:   pageURL,
		fetcher:   fetcher,
		extractor: extractor,
		resolver:  resolver,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BestWork fetches the source page, extracts up to three video links and
// enriches each one in order. A failed fetch or an empty link list yields the
// placeholder showcase. Partially enriched results are still returned as-is.
func (s *Service) BestWork(ctx context.Context) Report {
	text, err := s.fetcher.Fetch(ctx, s.pageURL)
	if err != nil {
		s.logger.Warn("Failed to fetch showcase page, using placeholders",
			"page_url", s.pageURL,
			"error", err,
		)
		return s.fallback()
	}

	links := s.extractor.ExtractLinks(text)
	if len(links) == 0 {
		s.logger.Info("No video links found on showcase page, using placeholders",
			"page_url", s.pageURL,
		)
		return s.fallback()
	}

	report := Report{Items: make([]domain.WorkItem, 0, len(links))}
	for _, link := range links {
		item, enriched := s.buildItem(ctx, link, nil)
		if enriched {
			report.Enriched++
		}
		report.Items = append(report.Items, item)
	}

	if len(report.Items) == 0 {
		return s.fallback()
	}

	s.logger.Info("Built showcase from page",
		"page_url", s.pageURL,
		"items", len(report.Items),
		"enriched", report.Enriched,
	)

	return report
}

// RefreshMetrics enriches a single video URL. The manual retention value is
// passed through unchanged whether or not the lookup succeeds.
func (s *Service) RefreshMetrics(ctx context.Context, videoURL string, manualRetention *float64) (domain.WorkItem, bool, error) {
	if _, ok := urldetector.ExtractVideoID(videoURL); !ok {
		return domain.WorkItem{}, false, fmt.Errorf("%w: %s", ErrInvalidVideoURL, videoURL)
	}

	item, enriched := s.buildItem(ctx, videoURL, manualRetention)
	return item, enriched, nil
}

// buildItem assembles one WorkItem, defaulting every field the lookup did not supply
func (s *Service) buildItem(ctx context.Context, link string, manualRetention *float64) (domain.WorkItem, bool) {
	var (
		details domain.Enrichment
		ok      bool
	)
	if videoID, found := urldetector.ExtractVideoID(link); found {
		details, ok = s.resolver.Lookup(ctx, videoID)
	}

	now := s.now()
	youtubeURL := link
	item := domain.WorkItem{
		Title:      domain.DefaultVideoTitle,
		YouTubeURL: &youtubeURL,
		Metrics: domain.Metric{
			AvgRetention: manualRetention,
			LastUpdated:  &now,
		},
	}

	if ok {
		if details.Title != nil {
			item.Title = *details.Title
		}
		item.Channel = details.Channel
		item.ThumbnailURL = details.ThumbnailURL
		item.Metrics.Views = details.Views
		item.Metrics.UploadDate = details.UploadDate
	}

	return item, ok
}

// fallback returns the placeholder showcase pointing at the source page
func (s *Service) fallback() Report {
	now := s.now()
	items := make([]domain.WorkItem, 0, placeholderCount)

	for i := 1; i <= placeholderCount; i++ {
		channel := domain.PlaceholderChannel
		pageURL := s.pageURL
		outcome := domain.PlaceholderOutcome
		lastUpdated := now

		items = append(items, domain.WorkItem{
			Title:      fmt.Sprintf("%s %d", domain.PlaceholderTitlePrefix, i),
			Channel:    &channel,
			YouTubeURL: &pageURL,
			Outcome:    &outcome,
			Metrics: domain.Metric{
				LastUpdated: &lastUpdated,
			},
		})
	}

	return Report{Items: items, Fallback: true}
}
