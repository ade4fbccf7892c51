package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cardsync/internal/formatter"
	"cardsync/internal/plan"
	"cardsync/internal/tasks"
)

// SyncRun runs a full catalog → card sync.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.SyncOpts{
		SourceRef: cmd.String("source"),
		CardHint:  cmd.String("card"),
		Threshold: r.threshold(cmd),
		AssumeYes: cmd.Bool("yes"),
	}

	r.logger.Info("starting sync", "source", opts.SourceRef, "card", opts.CardHint)

	engine, err := r.newEngine()
	if err != nil {
		return err
	}

	// Progress channel and goroutine to render updates as they arrive
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.Planning:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.Confirming:
				if p, ok := update.Data.(plan.Plan); ok {
					r.writePlain("\n%s\n", formatter.RenderTable(p))
				}
			case tasks.Fetching, tasks.Publishing:
				r.writePlain("   %s\n", update.Message)
			case tasks.Committing:
				r.writePlain("\n📝 %s\n", update.Message)
			case tasks.Persisting:
				r.writePlain("💾 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	if result.InSync {
		r.writePlain("✓ %q is already in sync with %q, nothing to do.\n", result.TargetName, result.SourceName)
		return nil
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("Source: %s (%d items)\n", result.SourceName, len(result.Plan.Items)-result.Plan.RemoveCount)
	r.writePlain("Card: %s\n", result.TargetName)
	r.writePlain("Changes: %s\n", formatter.Summary(result.Plan))

	if !result.Persisted {
		r.writePlain("\nNote: the playlist-card association could not be saved.\n")
	}

	return nil
}

// SyncPlan shows the reconciliation plan without applying it.
func (r *Runner) SyncPlan(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.SyncOpts{
		SourceRef: cmd.String("source"),
		CardHint:  cmd.String("card"),
		Threshold: r.threshold(cmd),
	}

	engine, err := r.newEngine()
	if err != nil {
		return err
	}

	result, err := engine.Plan(ctx, nil, opts)
	if err != nil {
		return err
	}

	switch format := cmd.String("format"); format {
	case "table", "":
		r.writePlain("%s", formatter.RenderTable(result.Plan))
	case "csv":
		data, err := formatter.ToCSV(result.Plan)
		if err != nil {
			return err
		}
		r.writePlain("%s", data)
	case "markdown":
		r.writePlain("%s", formatter.ToMarkdown(result.Plan, result.SourceName, result.TargetName))
	default:
		return fmt.Errorf("unknown format %q (want table, csv, or markdown)", format)
	}

	return nil
}

// threshold reads the threshold flag, falling back to the configured value.
func (r *Runner) threshold(cmd *cli.Command) float64 {
	if t := cmd.Float("threshold"); t > 0 {
		return t
	}
	return r.config.Sync.Threshold
}
