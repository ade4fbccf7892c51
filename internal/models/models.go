package models

import (
	"fmt"
	"time"
)

// SourceItem is one entry of the external catalog playlist.
//
// Locator is whatever the media fetcher needs to retrieve the payload
// (typically a URL). Immutable once fetched from the catalog.
type SourceItem struct {
	ID      string // Opaque catalog identifier
	Title   string // Human-readable title used for matching
	Locator string // Retrieval locator for the media fetcher
}

// Playlist is catalog-side playlist metadata.
type Playlist struct {
	ID        string
	Name      string
	ItemCount int
}

// TargetItem is an existing chapter in a card container.
//
// Key is the container-local identifier, MediaRef addresses the already
// published asset. Icon and the size/duration fields are card-side metadata
// that must pass through a sync unmodified when the chapter is kept.
type TargetItem struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	MediaRef string `json:"mediaRef"`
	Duration int    `json:"duration,omitempty"` // Seconds
	FileSize int64  `json:"fileSize,omitempty"` // Bytes
	Icon     string `json:"icon,omitempty"`
}

// Container identifies a card container (the target playlist).
type Container struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ItemCount int    `json:"itemCount,omitempty"`
}

// ContainerDetail is a container together with its ordered chapters.
type ContainerDetail struct {
	Container
	Items []TargetItem `json:"items"`
}

// Asset is the result of publishing a local media payload.
type Asset struct {
	Ref      string `json:"ref"`
	Duration int    `json:"duration"` // Seconds
	FileSize int64  `json:"fileSize"` // Bytes
}

// Association is the durable link between one source playlist and one card
// container, keyed by SourceID with upsert semantics. Written only after a
// successful commit.
type Association struct {
	SourceID     string
	TargetID     string
	TargetName   string
	SourceName   string
	LastSyncedAt time.Time
}

// Validate checks that the association carries both sides of the link.
func (a Association) Validate() error {
	if a.SourceID == "" {
		return fmt.Errorf("association missing source ID")
	}
	if a.TargetID == "" {
		return fmt.Errorf("association missing target ID")
	}
	return nil
}
