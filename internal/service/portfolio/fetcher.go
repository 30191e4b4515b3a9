package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// outboundTimeout applies to the page fetch and to each metadata lookup
	outboundTimeout = 12 * time.Second

	// maxPageBytes limits how much of the source page is read
	maxPageBytes = 4 * 1024 * 1024

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrFetchFailed wraps every page fetch failure
var ErrFetchFailed = errors.New("fetch failed")

// HTTPPageFetcher retrieves the showcase source page with a single GET
type HTTPPageFetcher struct {
	httpClient *http.Client
}

// NewHTTPPageFetcher creates a fetcher with the fixed outbound timeout
func NewHTTPPageFetcher() *HTTPPageFetcher {
	return &HTTPPageFetcher{
		httpClient: &http.Client{
			Timeout: outboundTimeout,
		},
	}
}

// Fetch returns the response body as text. Network errors, timeouts and
// non-2xx statuses all come back wrapped in ErrFetchFailed. There is no retry.
func (f *HTTPPageFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP error: %d %s", ErrFetchFailed, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read body: %v", ErrFetchFailed, err)
	}

	return string(body), nil
}
