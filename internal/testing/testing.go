// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"cardsync/internal/models"
)

// MockCatalog is a test double for [services.CatalogClient].
type MockCatalog struct {
	Items       []models.SourceItem
	Playlist    *models.Playlist
	ListErr     error
	PlaylistErr error
}

func (m *MockCatalog) ListItems(ctx context.Context, ref string) ([]models.SourceItem, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Items, nil
}

func (m *MockCatalog) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if m.PlaylistErr != nil {
		return nil, m.PlaylistErr
	}
	if m.Playlist != nil {
		return m.Playlist, nil
	}
	return &models.Playlist{ID: playlistID, Name: "Playlist " + playlistID, ItemCount: len(m.Items)}, nil
}

func (m *MockCatalog) ExtractPlaylistID(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty reference")
	}
	return ref, nil
}

func (m *MockCatalog) Name() string { return "mock catalog" }

// MockCard is a test double for [services.CardClient]. It records every
// ReplaceItems call so tests can assert commit contents and counts.
type MockCard struct {
	Containers []models.Container
	Details    map[string]*models.ContainerDetail
	Replaced   map[string][]models.TargetItem
	Created    []models.Container

	ListErr    error
	GetErr     error
	ReplaceErr error
	CreateErr  error
}

func (m *MockCard) ListContainers(ctx context.Context) ([]models.Container, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Containers, nil
}

func (m *MockCard) GetContainer(ctx context.Context, id string) (*models.ContainerDetail, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if d, ok := m.Details[id]; ok {
		return d, nil
	}
	return &models.ContainerDetail{Container: models.Container{ID: id, Name: "card " + id}}, nil
}

func (m *MockCard) ReplaceItems(ctx context.Context, id string, items []models.TargetItem) error {
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	if m.Replaced == nil {
		m.Replaced = make(map[string][]models.TargetItem)
	}
	m.Replaced[id] = append([]models.TargetItem(nil), items...)
	return nil
}

func (m *MockCard) CreateContainer(ctx context.Context, name string) (*models.Container, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	c := models.Container{ID: fmt.Sprintf("new-%d", len(m.Created)+1), Name: name}
	m.Created = append(m.Created, c)
	return &c, nil
}

// MockFetcher is a test double for [media.Fetcher]. FailOn aborts the fetch
// of the item with that source ID.
type MockFetcher struct {
	FailOn  string
	Err     error
	Fetched []string
}

func (m *MockFetcher) Fetch(ctx context.Context, item models.SourceItem, dir string) (string, error) {
	if item.ID == m.FailOn {
		if m.Err != nil {
			return "", m.Err
		}
		return "", errors.New("fetch failed")
	}

	path := filepath.Join(dir, item.ID+".media")
	if err := os.WriteFile(path, []byte("media:"+item.ID), 0644); err != nil {
		return "", err
	}
	m.Fetched = append(m.Fetched, item.ID)
	return path, nil
}

// MockPublisher is a test double for [media.Publisher]. FailOn aborts the
// publish of the payload fetched for that source ID.
type MockPublisher struct {
	FailOn    string
	Err       error
	Published []string
}

func (m *MockPublisher) Publish(ctx context.Context, localPath string) (*models.Asset, error) {
	base := filepath.Base(localPath)
	id := base[:len(base)-len(filepath.Ext(base))]
	if id == m.FailOn {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, errors.New("publish failed")
	}

	m.Published = append(m.Published, id)
	return &models.Asset{Ref: "asset:" + id, Duration: 180, FileSize: 1024}, nil
}

// MockLinks is an in-memory test double for [store.Links].
type MockLinks struct {
	Records   map[string]models.Association
	GetErr    error
	UpsertErr error
}

func (m *MockLinks) Get(sourceID string) (*models.Association, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if a, ok := m.Records[sourceID]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *MockLinks) Upsert(assoc models.Association) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	if m.Records == nil {
		m.Records = make(map[string]models.Association)
	}
	m.Records[assoc.SourceID] = assoc
	return nil
}

func (m *MockLinks) List() ([]models.Association, error) {
	var out []models.Association
	for _, a := range m.Records {
		out = append(out, a)
	}
	return out, nil
}

func (m *MockLinks) Delete(sourceID string) error {
	delete(m.Records, sourceID)
	return nil
}

// ScriptPrompter is a deterministic [prompt.Prompter] that replays scripted
// answers in order. Exhausting a script fails the calling test path.
type ScriptPrompter struct {
	Confirms  []bool
	Selects   []int
	Texts     []string
	Questions []string // Records every message asked, in order
}

func (s *ScriptPrompter) Confirm(message string) (bool, error) {
	s.Questions = append(s.Questions, message)
	if len(s.Confirms) == 0 {
		return false, errors.New("script exhausted: unexpected Confirm")
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}

func (s *ScriptPrompter) SelectOne(message string, choices []string) (int, error) {
	s.Questions = append(s.Questions, message)
	if len(s.Selects) == 0 {
		return 0, errors.New("script exhausted: unexpected SelectOne")
	}
	answer := s.Selects[0]
	s.Selects = s.Selects[1:]
	if answer < 0 || answer >= len(choices) {
		return 0, fmt.Errorf("scripted selection %d out of range (%d choices)", answer, len(choices))
	}
	return answer, nil
}

func (s *ScriptPrompter) FreeText(message, def string) (string, error) {
	s.Questions = append(s.Questions, message)
	if len(s.Texts) == 0 {
		return def, nil
	}
	answer := s.Texts[0]
	s.Texts = s.Texts[1:]
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertDirGone(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Directory still exists: %s", path)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
