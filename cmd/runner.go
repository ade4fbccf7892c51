package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"cardsync/internal/media"
	"cardsync/internal/prompt"
	"cardsync/internal/services"
	"cardsync/internal/shared"
	"cardsync/internal/store"
	"cardsync/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	catalog   services.CatalogClient
	card      services.CardClient
	api       *services.APIService
	fetcher   media.Fetcher
	publisher media.Publisher
	prompter  prompt.Prompter
	logger    *log.Logger
	output    io.Writer
	db        *sql.DB
	links     store.Links
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Catalog   services.CatalogClient
	Card      services.CardClient
	API       *services.APIService
	Fetcher   media.Fetcher
	Publisher media.Publisher
	Prompter  prompt.Prompter
	Logger    *log.Logger
	Output    io.Writer
	Links     store.Links
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:    opts.Config,
		catalog:   opts.Catalog,
		card:      opts.Card,
		api:       opts.API,
		fetcher:   opts.Fetcher,
		publisher: opts.Publisher,
		prompter:  opts.Prompter,
		logger:    opts.Logger,
		output:    opts.Output,
		links:     opts.Links,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, cardCommand, catalogCommand, linksCommand, apiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openLinks opens the association store, reusing an injected test double
// when present. Callers run within one command invocation; the database is
// closed when the process exits.
func (r *Runner) openLinks() (store.Links, error) {
	if r.links != nil {
		return r.links, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	r.db = db
	r.links = store.NewLinkStore(db)
	return r.links, nil
}

// newEngine assembles the sync engine from the runner's collaborators.
func (r *Runner) newEngine() (*tasks.CardEngine, error) {
	links, err := r.openLinks()
	if err != nil {
		return nil, err
	}

	return tasks.NewCardEngine(r.catalog, r.card, r.fetcher, r.publisher, links, r.prompter, r.logger), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
