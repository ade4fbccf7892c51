// Catalog proxy [CatalogClient] implementation
//
// Communicates with the catalog proxy server, which wraps the upstream
// catalog API and serves playlist listings as JSON.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cardsync/internal/models"
	"cardsync/internal/shared"
)

const defaultCatalogBaseURL = "http://localhost:8080"

// catalogItem is the proxy's wire shape for one playlist entry.
type catalogItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration_seconds"`
}

// catalogPlaylist is the proxy's wire shape for playlist metadata.
type catalogPlaylist struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	ItemCount int           `json:"item_count"`
	Items     []catalogItem `json:"items,omitempty"`
}

// CatalogService implements [CatalogClient] against the catalog proxy.
type CatalogService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewCatalogService creates a new catalog client. An empty baseURL falls back
// to the local proxy default.
func NewCatalogService(baseURL, apiKey string, client *http.Client) *CatalogService {
	if baseURL == "" {
		baseURL = defaultCatalogBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CatalogService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

// Name returns the catalog name.
func (c *CatalogService) Name() string {
	return "Catalog"
}

func (c *CatalogService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrPlaylistNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: catalog proxy returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListItems retrieves the ordered playlist items.
//
// Calls GET /api/playlists/{id}/items on the proxy. Entries missing an ID or
// title are dropped at the boundary.
func (c *CatalogService) ListItems(ctx context.Context, ref string) ([]models.SourceItem, error) {
	id, err := c.ExtractPlaylistID(ref)
	if err != nil {
		return nil, err
	}

	var pl catalogPlaylist
	if err := c.doRequest(ctx, "/api/playlists/"+url.PathEscape(id)+"/items", &pl); err != nil {
		return nil, err
	}

	items := make([]models.SourceItem, 0, len(pl.Items))
	for _, entry := range pl.Items {
		if entry.ID == "" || entry.Title == "" {
			continue
		}
		items = append(items, models.SourceItem{
			ID:      entry.ID,
			Title:   entry.Title,
			Locator: entry.URL,
		})
	}

	return items, nil
}

// GetPlaylist retrieves playlist metadata by ID.
//
// Calls GET /api/playlists/{id} on the proxy.
func (c *CatalogService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	var pl catalogPlaylist
	if err := c.doRequest(ctx, "/api/playlists/"+url.PathEscape(playlistID), &pl); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:        pl.ID,
		Name:      pl.Title,
		ItemCount: pl.ItemCount,
	}, nil
}

// ExtractPlaylistID resolves a playlist reference to its bare ID.
//
// Accepts a bare ID, or a playlist URL carrying the ID in the "list" query
// parameter or as the last path segment.
func (c *CatalogService) ExtractPlaylistID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty playlist reference", shared.ErrInvalidInput)
	}

	if !strings.Contains(ref, "://") {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: unparsable playlist URL %q", shared.ErrInvalidInput, ref)
	}

	if id := u.Query().Get("list"); id != "" {
		return id, nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		return last, nil
	}

	return "", fmt.Errorf("%w: no playlist ID in %q", shared.ErrInvalidInput, ref)
}
