package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"cardsync/internal/shared"
)

// APIGet performs a raw GET against the catalog proxy and prints the response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: request path", shared.ErrMissingArgument)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Debug("api get", "path", path, "status", resp.StatusCode)

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", resp.Body)
	return nil
}
