package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"cardsync/internal/models"
	"cardsync/internal/shared"
)

// Publisher uploads a local media payload and waits for it to become a
// referenceable asset.
type Publisher interface {
	// Publish is idempotent under identical content: a payload the host has
	// already transcoded resolves immediately without a new upload. Fails
	// with shared.ErrPublishFailed or shared.ErrPublishTimeout.
	Publish(ctx context.Context, localPath string) (*models.Asset, error)
}

// assetStatus is the host's wire shape for asset state.
type assetStatus struct {
	Ref      string `json:"ref"`
	State    string `json:"state"` // "pending", "ready", "failed"
	Duration int    `json:"duration,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
}

// HTTPPublisher implements [Publisher] against the card host's asset API.
//
// Upload flow: probe GET /v1/assets/{sha256} for a dedup hit, otherwise
// PUT the payload, then poll the asset state at a fixed interval up to a
// fixed attempt cap.
type HTTPPublisher struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	pollLimiter  *rate.Limiter
	pollAttempts int
}

// NewHTTPPublisher creates a publisher. pollInterval and pollAttempts bound
// the transcode wait; non-positive values fall back to 2s / 60 attempts.
func NewHTTPPublisher(baseURL, token string, client *http.Client, pollInterval time.Duration, pollAttempts int) *HTTPPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if pollAttempts <= 0 {
		pollAttempts = 60
	}

	return &HTTPPublisher{
		baseURL:      baseURL,
		token:        token,
		httpClient:   client,
		pollLimiter:  rate.NewLimiter(rate.Every(pollInterval), 1),
		pollAttempts: pollAttempts,
	}
}

// Publish uploads the payload at localPath and waits for the asset to become
// ready.
func (p *HTTPPublisher) Publish(ctx context.Context, localPath string) (*models.Asset, error) {
	digest, err := hashFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}

	// Dedup probe: an existing ready asset short-circuits the upload.
	if asset, ok, err := p.probe(ctx, digest); err != nil {
		return nil, err
	} else if ok {
		return asset, nil
	}

	if err := p.upload(ctx, localPath, digest); err != nil {
		return nil, err
	}

	return p.waitReady(ctx, digest)
}

func (p *HTTPPublisher) probe(ctx context.Context, digest string) (*models.Asset, bool, error) {
	status, code, err := p.getStatus(ctx, digest)
	if err != nil {
		return nil, false, err
	}
	if code == http.StatusNotFound {
		return nil, false, nil
	}
	if status.State == "ready" {
		return &models.Asset{Ref: status.Ref, Duration: status.Duration, FileSize: status.FileSize}, true, nil
	}
	return nil, false, nil
}

func (p *HTTPPublisher) upload(ctx context.Context, localPath, digest string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.baseURL+"/v1/assets/"+digest, f)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if info, err := f.Stat(); err == nil {
		req.ContentLength = info.Size()
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 409 means the host already holds this content; treat as success and
	// fall through to polling.
	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: upload returned status %d", shared.ErrPublishFailed, resp.StatusCode)
	}

	return nil
}

// waitReady polls the asset state at the configured interval. Exceeding the
// attempt cap is a timeout, never an infinite wait.
func (p *HTTPPublisher) waitReady(ctx context.Context, digest string) (*models.Asset, error) {
	for attempt := 0; attempt < p.pollAttempts; attempt++ {
		if err := p.pollLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
		}

		status, code, err := p.getStatus(ctx, digest)
		if err != nil {
			return nil, err
		}
		if code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: asset vanished during processing", shared.ErrPublishFailed)
		}

		switch status.State {
		case "ready":
			return &models.Asset{Ref: status.Ref, Duration: status.Duration, FileSize: status.FileSize}, nil
		case "failed":
			return nil, fmt.Errorf("%w: host reported transcode failure", shared.ErrPublishFailed)
		}
	}

	return nil, fmt.Errorf("%w: asset not ready after %d attempts", shared.ErrPublishTimeout, p.pollAttempts)
}

func (p *HTTPPublisher) getStatus(ctx context.Context, digest string) (*assetStatus, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/assets/"+digest, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return &assetStatus{}, http.StatusNotFound, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("%w: asset status returned %d", shared.ErrPublishFailed, resp.StatusCode)
	}

	var status assetStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}

	return &status, resp.StatusCode, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
