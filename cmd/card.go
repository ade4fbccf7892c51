package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cardsync/internal/shared"
)

// CardList lists every container on the card host.
func (r *Runner) CardList(ctx context.Context, cmd *cli.Command) error {
	containers, err := r.card.ListContainers(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(containers, cmd.Bool("pretty"))
	}

	if len(containers) == 0 {
		r.writePlain("No containers found.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Containers (%d)", len(containers)))
	for i, c := range containers {
		r.writePlain("%d. %s (%d chapters)\n", i+1, c.Name, c.ItemCount)
		r.writePlain("   ID: %s\n", c.ID)
	}

	return nil
}

// CardShow prints a container with its chapters in order.
func (r *Runner) CardShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: container ID", shared.ErrMissingArgument)
	}

	detail, err := r.card.GetContainer(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(detail.Name)
	if len(detail.Items) == 0 {
		r.writePlain("No chapters.\n")
		return nil
	}

	for i, item := range detail.Items {
		r.writePlain("%d. %s\n", i+1, item.Title)
		r.writePlain("   Key: %s  Ref: %s\n", item.Key, item.MediaRef)
	}

	return nil
}
