package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cardsync/internal/shared"
)

// LinksList prints every remembered playlist → card association.
func (r *Runner) LinksList(ctx context.Context, cmd *cli.Command) error {
	links, err := r.openLinks()
	if err != nil {
		return err
	}

	assocs, err := links.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(assocs, cmd.Bool("pretty"))
	}

	if len(assocs) == 0 {
		r.writePlain("No associations remembered yet.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Associations (%d)", len(assocs)))
	for _, assoc := range assocs {
		r.writePlain("%s → %s\n", assoc.SourceName, assoc.TargetName)
		r.writePlain("   Source: %s  Card: %s\n", assoc.SourceID, assoc.TargetID)
		r.writePlain("   Last synced: %s\n", assoc.LastSyncedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// LinksRemove forgets the association for a source playlist.
func (r *Runner) LinksRemove(ctx context.Context, cmd *cli.Command) error {
	sourceID := cmd.StringArg("source-id")
	if sourceID == "" {
		return fmt.Errorf("%w: source playlist ID", shared.ErrMissingArgument)
	}

	links, err := r.openLinks()
	if err != nil {
		return err
	}

	if err := links.Delete(sourceID); err != nil {
		return err
	}

	r.logger.Info("association removed", "source", sourceID)
	r.writePlain("Forgot association for %s.\n", sourceID)
	return nil
}
