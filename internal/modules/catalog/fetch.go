package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher retrieves a catalog document from a seller-owned URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

const maxDocumentSize = 16 << 20 // 16 MiB

type httpFetcher struct {
	client *retryablehttp.Client
}

// NewHTTPFetcher creates a Fetcher with a bounded per-attempt timeout and
// retry with backoff on transient failures.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = nil
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return data, nil
}
