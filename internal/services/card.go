// Card host [CardClient] implementation
//
// Talks to the card host REST API with a bearer token. Chapter lists are
// replaced wholesale: the host applies the full list in one write, so a sync
// never leaves a container half-updated.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cardsync/internal/models"
	"cardsync/internal/shared"
)

// cardChapter is the host's wire shape for one chapter.
type cardChapter struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	MediaRef string `json:"mediaRef"`
	Duration int    `json:"duration,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// cardContainer is the host's wire shape for a container.
type cardContainer struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ChapterCount int           `json:"chapterCount,omitempty"`
	Chapters     []cardChapter `json:"chapters,omitempty"`
}

// CardService implements [CardClient] against the card host API.
type CardService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewCardService creates a new card host client.
func NewCardService(baseURL, token string, client *http.Client) *CardService {
	if client == nil {
		client = http.DefaultClient
	}

	return &CardService{
		baseURL:    baseURL,
		token:      token,
		httpClient: client,
	}
}

func (c *CardService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrContainerNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: card host status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: card host status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListContainers retrieves every container owned by the account.
//
// Calls GET /v1/containers.
func (c *CardService) ListContainers(ctx context.Context) ([]models.Container, error) {
	var raw []cardContainer
	if err := c.doRequest(ctx, http.MethodGet, "/v1/containers", nil, &raw); err != nil {
		return nil, err
	}

	containers := make([]models.Container, 0, len(raw))
	for _, rc := range raw {
		if rc.ID == "" {
			continue
		}
		containers = append(containers, models.Container{ID: rc.ID, Name: rc.Name, ItemCount: rc.ChapterCount})
	}

	return containers, nil
}

// GetContainer retrieves a container with its ordered chapters.
//
// Calls GET /v1/containers/{id}.
func (c *CardService) GetContainer(ctx context.Context, id string) (*models.ContainerDetail, error) {
	var raw cardContainer
	if err := c.doRequest(ctx, http.MethodGet, "/v1/containers/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, err
	}

	detail := &models.ContainerDetail{
		Container: models.Container{ID: raw.ID, Name: raw.Name, ItemCount: len(raw.Chapters)},
		Items:     make([]models.TargetItem, 0, len(raw.Chapters)),
	}
	for _, ch := range raw.Chapters {
		detail.Items = append(detail.Items, models.TargetItem{
			Key:      ch.Key,
			Title:    ch.Title,
			MediaRef: ch.MediaRef,
			Duration: ch.Duration,
			FileSize: ch.FileSize,
			Icon:     ch.Icon,
		})
	}

	return detail, nil
}

// ReplaceItems writes the full replacement chapter list in one update.
//
// Calls PUT /v1/containers/{id}/chapters with the complete list.
func (c *CardService) ReplaceItems(ctx context.Context, id string, items []models.TargetItem) error {
	chapters := make([]cardChapter, 0, len(items))
	for _, item := range items {
		chapters = append(chapters, cardChapter{
			Key:      item.Key,
			Title:    item.Title,
			MediaRef: item.MediaRef,
			Duration: item.Duration,
			FileSize: item.FileSize,
			Icon:     item.Icon,
		})
	}

	payload := struct {
		Chapters []cardChapter `json:"chapters"`
	}{Chapters: chapters}

	if err := c.doRequest(ctx, http.MethodPut, "/v1/containers/"+url.PathEscape(id)+"/chapters", payload, nil); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCommitFailed, err)
	}

	return nil
}

// CreateContainer creates an empty container with the given name.
//
// Calls POST /v1/containers.
func (c *CardService) CreateContainer(ctx context.Context, name string) (*models.Container, error) {
	payload := struct {
		Name string `json:"name"`
	}{Name: name}

	var raw cardContainer
	if err := c.doRequest(ctx, http.MethodPost, "/v1/containers", payload, &raw); err != nil {
		return nil, err
	}

	return &models.Container{ID: raw.ID, Name: raw.Name}, nil
}
