package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cardsync/internal/shared"
)

// CatalogItems lists the ordered items of a source playlist.
func (r *Runner) CatalogItems(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("ref")
	if ref == "" {
		return fmt.Errorf("%w: playlist URL or ID", shared.ErrMissingArgument)
	}

	id, err := r.catalog.ExtractPlaylistID(ref)
	if err != nil {
		return err
	}

	playlist, err := r.catalog.GetPlaylist(ctx, id)
	if err != nil {
		return err
	}

	items, err := r.catalog.ListItems(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"playlist": playlist, "items": items}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d items)", playlist.Name, len(items)))
	for i, item := range items {
		r.writePlain("%d. %s\n", i+1, item.Title)
	}

	return nil
}
