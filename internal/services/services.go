package services

import (
	"context"

	"cardsync/internal/models"
)

// CatalogClient reads the source playlist from the external catalog.
type CatalogClient interface {
	// ListItems retrieves the ordered items of a playlist. The ref may be a
	// full playlist URL or a bare playlist ID.
	ListItems(ctx context.Context, ref string) ([]models.SourceItem, error)

	// GetPlaylist retrieves playlist metadata (name, item count) by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// ExtractPlaylistID resolves a playlist reference to its bare ID.
	// Fails with shared.ErrInvalidInput for unresolvable references.
	ExtractPlaylistID(ref string) (string, error)

	// Name returns the catalog name for display.
	Name() string
}

// CardClient reads and writes card containers on the card host.
type CardClient interface {
	// ListContainers retrieves every container owned by the account.
	ListContainers(ctx context.Context) ([]models.Container, error)

	// GetContainer retrieves a container with its ordered chapters.
	GetContainer(ctx context.Context, id string) (*models.ContainerDetail, error)

	// ReplaceItems writes the full replacement chapter list in one atomic
	// update. Partial writes are never issued.
	ReplaceItems(ctx context.Context, id string, items []models.TargetItem) error

	// CreateContainer creates an empty container with the given name.
	CreateContainer(ctx context.Context, name string) (*models.Container, error)
}
