package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"cardsync/internal/models"
	"cardsync/internal/shared"
)

// Fetcher retrieves a source item's payload into a local directory.
type Fetcher interface {
	// Fetch downloads the item's locator into dir, keyed by the item's
	// source ID, and returns the local path. Fails with shared.ErrFetchFailed.
	Fetch(ctx context.Context, item models.SourceItem, dir string) (string, error)
}

// HTTPFetcher implements [Fetcher] over plain HTTP GET of the item locator.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher using the given client (http.DefaultClient
// when nil).
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{httpClient: client}
}

// Fetch downloads item.Locator into dir as "<source-id>.media".
func (f *HTTPFetcher) Fetch(ctx context.Context, item models.SourceItem, dir string) (string, error) {
	if item.Locator == "" {
		return "", fmt.Errorf("%w: item %q has no locator", shared.ErrFetchFailed, item.Title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.Locator, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d for %q", shared.ErrFetchFailed, resp.StatusCode, item.Title)
	}

	path := filepath.Join(dir, item.ID+".media")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	return path, nil
}
