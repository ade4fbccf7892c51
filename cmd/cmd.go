// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// syncCommand handles sync runs and dry-run plans
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync a catalog playlist onto a card",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a full sync: plan, confirm, fetch, publish, commit",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Source playlist URL or ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "card",
						Aliases: []string{"d"},
						Usage:   "Target card name hint",
					},
					&cli.FloatFlag{
						Name:  "threshold",
						Usage: "Fuzzy match threshold (0-1, lower is stricter)",
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Apply the plan without confirmation",
					},
				},
				Action: r.SyncRun,
			},
			{
				Name:  "plan",
				Usage: "Show the reconciliation plan without applying it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Source playlist URL or ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "card",
						Aliases:  []string{"d"},
						Usage:    "Target card name hint",
						Required: true,
					},
					&cli.FloatFlag{
						Name:  "threshold",
						Usage: "Fuzzy match threshold (0-1, lower is stricter)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: table, csv, markdown",
						Value:   "table",
					},
				},
				Action: r.SyncPlan,
			},
		},
	}
}

// cardCommand handles card container operations
func cardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "card",
		Usage: "Card container operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List card containers",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CardList,
			},
			{
				Name:  "show",
				Usage: "Show a container with its chapters",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CardShow,
			},
		},
	}
}

// catalogCommand handles source catalog operations
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Source catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "items",
				Usage: "List the items of a source playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "ref",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogItems,
			},
		},
	}
}

// linksCommand handles remembered playlist → card associations
func linksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "Manage remembered playlist-card associations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List remembered associations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LinksList,
			},
			{
				Name:  "rm",
				Usage: "Forget the association for a source playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "source-id",
					},
				},
				Action: r.LinksRemove,
			},
		},
	}
}

// apiCommand handles direct (proxy) API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the catalog proxy",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the catalog proxy, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// setupCommand handles initial setup operations
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initial setup operations",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Database file path (overrides config)",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml with default settings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
