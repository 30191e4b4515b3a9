package domain

import "time"

// Metric holds the performance figures shown for one showcased video.
// Nil fields are serialized as null.
type Metric struct {
	Views        *int64     `json:"views"`
	AvgRetention *float64   `json:"avg_retention"`
	UploadDate   *string    `json:"upload_date"`
	LastUpdated  *time.Time `json:"last_updated"`
}

// WorkItem is one entry of the best-work showcase
type WorkItem struct {
	Title        string  `json:"title"`
	Channel      *string `json:"channel"`
	YouTubeURL   *string `json:"youtube_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Outcome      *string `json:"outcome"`
	Metrics      Metric  `json:"metrics"`
}

// Enrichment is the subset of YouTube video data used to fill a WorkItem.
// Any field may be nil when the API omitted it.
type Enrichment struct {
	Title        *string
	Channel      *string
	ThumbnailURL *string
	UploadDate   *string
	Views        *int64
}

// Placeholder texts used when no enrichment is available
const (
	DefaultVideoTitle      = "YouTube Video"
	PlaceholderChannel     = "Channel Name"
	PlaceholderOutcome     = "N/A — add manually"
	PlaceholderTitlePrefix = "Case Study Placeholder"
)

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
