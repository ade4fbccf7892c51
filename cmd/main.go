package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"cardsync/internal/media"
	"cardsync/internal/prompt"
	"cardsync/internal/services"
	"cardsync/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	catalog := services.NewCatalogService(config.Catalog.BaseURL, config.Catalog.APIKey, nil)
	card := services.NewCardService(config.Card.BaseURL, config.Card.Token, nil)
	api := services.NewAPIService(config.Catalog.BaseURL, nil, 5)
	fetcher := media.NewHTTPFetcher(nil)
	publisher := media.NewHTTPPublisher(
		config.Card.BaseURL,
		config.Card.Token,
		nil,
		config.Sync.PollInterval(),
		config.Sync.PublishPollAttempts,
	)

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Catalog:   catalog,
		Card:      card,
		API:       api,
		Fetcher:   fetcher,
		Publisher: publisher,
		Prompter:  prompt.NewTerminalPrompter(nil),
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "cardsync",
		Usage:    "Sync catalog playlists onto cards",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrCancelled) {
			logger.Info("cancelled, no changes made")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
