package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"cardsync/internal/shared"
	"cardsync/internal/store"
)

// SetupDatabase creates the local database and applies migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		path = r.config.Database.Path
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return err
	}

	r.logger.Info("database initialized", "path", path)
	r.writePlain("Database ready at %s.\n", path)
	return nil
}

// SetupConfig writes a starter config.toml.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("Created %s. Fill in your catalog API key and card token.\n", path)
	return nil
}
