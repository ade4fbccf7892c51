package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardsync/internal/models"
	"cardsync/internal/shared"
)

func TestExtractPlaylistID(t *testing.T) {
	c := NewCatalogService("", "", nil)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{name: "bare ID", ref: "PL12345", want: "PL12345"},
		{name: "list query param", ref: "https://catalog.example/watch?v=abc&list=PL999", want: "PL999"},
		{name: "path segment", ref: "https://catalog.example/playlists/PL777", want: "PL777"},
		{name: "surrounding whitespace", ref: "  PL12345  ", want: "PL12345"},
		{name: "empty", ref: "", wantErr: true},
		{name: "bare domain", ref: "https://catalog.example/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ExtractPlaylistID(tt.ref)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestCatalogListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/playlists/PL1/items" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "PL1",
			"title": "Road Trip Mix",
			"items": []map[string]any{
				{"id": "s1", "title": "Sweet Home Alabama", "url": "https://media.example/s1"},
				{"id": "", "title": "ghost entry"}, // Dropped at the boundary
				{"id": "s2", "title": "Free Bird", "url": "https://media.example/s2", "unknown_field": 42},
			},
		})
	}))
	defer srv.Close()

	c := NewCatalogService(srv.URL, "key", nil)
	items, err := c.ListItems(context.Background(), "PL1")
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (malformed entry dropped)", len(items))
	}
	want := models.SourceItem{ID: "s1", Title: "Sweet Home Alabama", Locator: "https://media.example/s1"}
	if items[0] != want {
		t.Errorf("items[0] = %+v, want %+v", items[0], want)
	}
}

func TestCatalogNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewCatalogService(srv.URL, "", nil)
	if _, err := c.ListItems(context.Background(), "missing"); !errors.Is(err, shared.ErrPlaylistNotFound) {
		t.Errorf("error = %v, want ErrPlaylistNotFound", err)
	}
}

func TestCardGetContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "c1",
			"name": "Road Trip",
			"chapters": []map[string]any{
				{"key": "k1", "title": "Sweet Home Alabama", "mediaRef": "asset:1", "duration": 281, "icon": "icon:guitar"},
			},
		})
	}))
	defer srv.Close()

	c := NewCardService(srv.URL, "tok", nil)
	detail, err := c.GetContainer(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetContainer returned error: %v", err)
	}

	if detail.Name != "Road Trip" || len(detail.Items) != 1 {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.Items[0].Icon != "icon:guitar" || detail.Items[0].Duration != 281 {
		t.Errorf("chapter metadata not carried through: %+v", detail.Items[0])
	}
}

func TestCardReplaceItems(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody struct {
		Chapters []cardChapter `json:"chapters"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewCardService(srv.URL, "tok", nil)
	items := []models.TargetItem{
		{Key: "k1", Title: "Sweet Home Alabama", MediaRef: "asset:1", Icon: "icon:guitar"},
		{Key: "k2", Title: "Free Bird", MediaRef: "asset:2"},
	}
	if err := c.ReplaceItems(context.Background(), "c1", items); err != nil {
		t.Fatalf("ReplaceItems returned error: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/v1/containers/c1/chapters" {
		t.Errorf("request = %s %s, want PUT /v1/containers/c1/chapters", gotMethod, gotPath)
	}
	if len(gotBody.Chapters) != 2 || gotBody.Chapters[0].Icon != "icon:guitar" {
		t.Errorf("request body = %+v", gotBody.Chapters)
	}
}

func TestCardReplaceItemsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCardService(srv.URL, "tok", nil)
	err := c.ReplaceItems(context.Background(), "c1", nil)
	if !errors.Is(err, shared.ErrCommitFailed) {
		t.Errorf("error = %v, want ErrCommitFailed", err)
	}
}

func TestCardCreateContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{"id": "new-1", "name": body.Name})
	}))
	defer srv.Close()

	c := NewCardService(srv.URL, "tok", nil)
	created, err := c.CreateContainer(context.Background(), "Bedtime Stories")
	if err != nil {
		t.Fatalf("CreateContainer returned error: %v", err)
	}
	if created.ID != "new-1" || created.Name != "Bedtime Stories" {
		t.Errorf("created = %+v", created)
	}
}

func TestAPIServiceGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer srv.Close()

	api := NewAPIService(srv.URL, nil, 0)
	resp, err := api.Get(context.Background(), "/health")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if resp.StatusCode != http.StatusOK || !resp.IsJSON {
		t.Errorf("response = %+v", resp)
	}
}
