package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"cardsync/internal/formatter"
	"cardsync/internal/match"
	"cardsync/internal/media"
	"cardsync/internal/models"
	"cardsync/internal/plan"
	"cardsync/internal/prompt"
	"cardsync/internal/resolve"
	"cardsync/internal/services"
	"cardsync/internal/shared"
	"cardsync/internal/store"
)

// SyncOpts configures one sync run.
type SyncOpts struct {
	SourceRef     string  // Playlist URL or bare ID
	CardHint      string  // Optional container name hint
	Threshold     float64 // Fuzzy match threshold; 0 = default
	AssumeYes     bool    // Skip the confirmation prompt
	WorkspaceRoot string  // Parent dir for the run workspace; "" = os.TempDir
}

// SyncRunResult contains all data from a full sync run.
type SyncRunResult struct {
	SourceID   string    // Resolved source playlist ID
	SourceName string    // Source playlist title
	TargetID   string    // Chosen container ID
	TargetName string    // Chosen container name
	Plan       plan.Plan // The generated reconciliation plan
	InSync     bool      // True when the plan required no changes
	Committed  bool      // True when the replacement list was written
	Persisted  bool      // True when the association was saved
}

// SyncEngine defines the operations of the sync pipeline.
type SyncEngine interface {
	// Run performs a full catalog → card sync: plan, confirm, fetch,
	// publish, commit, persist. A decline at any prompt surfaces
	// shared.ErrCancelled.
	Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncRunResult, error)

	// Plan generates and returns the reconciliation plan without applying
	// it (dry run). Requires an explicit card hint since no prompting is
	// done.
	Plan(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncRunResult, error)
}

// CardEngine implements [SyncEngine].
type CardEngine struct {
	catalog   services.CatalogClient
	card      services.CardClient
	fetcher   media.Fetcher
	publisher media.Publisher
	links     store.Links
	prompter  prompt.Prompter
	logger    *log.Logger
}

// NewCardEngine creates a CardEngine with the provided collaborators.
func NewCardEngine(
	catalog services.CatalogClient,
	card services.CardClient,
	fetcher media.Fetcher,
	publisher media.Publisher,
	links store.Links,
	prompter prompt.Prompter,
	logger *log.Logger,
) *CardEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &CardEngine{
		catalog:   catalog,
		card:      card,
		fetcher:   fetcher,
		publisher: publisher,
		links:     links,
		prompter:  prompter,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CardEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs a full catalog → card sync.
func (e *CardEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncRunResult, error) {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}

	// The workspace exists for the whole run and is removed on every exit
	// path, including planning failures and operator declines.
	workspace, err := os.MkdirTemp(opts.WorkspaceRoot, "cardsync-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	result, err := e.buildPlan(ctx, progress, opts, threshold)
	if err != nil {
		return nil, err
	}

	if result.Plan.InSync() {
		// Nothing to add or remove: no prompt, no commit, no new timestamp.
		result.InSync = true
		return result, nil
	}

	e.sendProgress(progress, planReadyUpdate(result.Plan))
	if !opts.AssumeYes {
		ok, err := e.prompter.Confirm(fmt.Sprintf("Apply to %q? (%s)", result.TargetName, formatter.Summary(result.Plan)))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.ErrCancelled
		}
	}

	adds := addItems(result.Plan)

	paths, err := e.fetchAll(ctx, progress, adds, workspace)
	if err != nil {
		return nil, err
	}

	assets, err := e.publishAll(ctx, progress, adds, paths)
	if err != nil {
		return nil, err
	}

	if err := e.commit(ctx, progress, result, assets); err != nil {
		return nil, err
	}
	result.Committed = true

	// A failed persist does not undo a successful commit; the sync already
	// succeeded from the card's perspective.
	e.sendProgress(progress, persistUpdate(result.SourceName, result.TargetName))
	assoc := models.Association{
		SourceID:     result.SourceID,
		TargetID:     result.TargetID,
		TargetName:   result.TargetName,
		SourceName:   result.SourceName,
		LastSyncedAt: time.Now(),
	}
	if err := e.links.Upsert(assoc); err != nil {
		e.logger.Warn("failed to persist association", "source", result.SourceID, "target", result.TargetID, "err", err)
	} else {
		result.Persisted = true
	}

	return result, nil
}

// Plan generates the reconciliation plan without applying it.
func (e *CardEngine) Plan(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncRunResult, error) {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}

	result, err := e.buildPlan(ctx, progress, opts, threshold)
	if err != nil {
		return nil, err
	}
	result.InSync = result.Plan.InSync()
	return result, nil
}

// buildPlan runs the PLANNING stage: source listing, target resolution,
// target read, plan generation. Side effects: network reads only.
func (e *CardEngine) buildPlan(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts, threshold float64) (*SyncRunResult, error) {
	sourceID, err := e.catalog.ExtractPlaylistID(opts.SourceRef)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, listSourceUpdate(opts.SourceRef))
	playlist, err := e.catalog.GetPlaylist(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	source, err := e.catalog.ListItems(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, foundSourceUpdate(playlist.Name, len(source)))

	resolver := resolve.New(e.card, e.links, e.prompter, threshold)
	resolution, err := resolver.Resolve(ctx, opts.CardHint, sourceID, playlist.Name)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, readTargetUpdate(resolution.TargetName))
	detail, err := e.card.GetContainer(ctx, resolution.TargetID)
	if err != nil {
		return nil, err
	}

	return &SyncRunResult{
		SourceID:   sourceID,
		SourceName: playlist.Name,
		TargetID:   resolution.TargetID,
		TargetName: resolution.TargetName,
		Plan:       plan.Generate(source, detail.Items, threshold),
	}, nil
}

// addItems returns the plan's Add entries in position order.
func addItems(p plan.Plan) []plan.Item {
	var adds []plan.Item
	for _, item := range p.Items {
		if item.Action == plan.Add {
			adds = append(adds, item)
		}
	}
	return adds
}

// fetchAll runs the FETCHING stage: every Add payload into the workspace,
// sequentially in source order. The first failure aborts the whole batch.
func (e *CardEngine) fetchAll(ctx context.Context, progress chan<- ProgressUpdate, adds []plan.Item, workspace string) (map[string]string, error) {
	paths := make(map[string]string, len(adds))

	for i, item := range adds {
		e.sendProgress(progress, fetchItemUpdate(i+1, len(adds), *item.Source))

		path, err := e.fetcher.Fetch(ctx, *item.Source, workspace)
		if err != nil {
			if errors.Is(err, shared.ErrFetchFailed) {
				return nil, fmt.Errorf("%w (item %q)", err, item.Title)
			}
			return nil, fmt.Errorf("%w: item %q: %v", shared.ErrFetchFailed, item.Title, err)
		}
		paths[item.Source.ID] = path
	}

	return paths, nil
}

// publishAll runs the PUBLISHING stage over the fetched payloads, in the
// same order. The first failure aborts before anything is committed.
func (e *CardEngine) publishAll(ctx context.Context, progress chan<- ProgressUpdate, adds []plan.Item, paths map[string]string) (map[string]*models.Asset, error) {
	assets := make(map[string]*models.Asset, len(adds))

	for i, item := range adds {
		e.sendProgress(progress, publishItemUpdate(i+1, len(adds), *item.Source))

		asset, err := e.publisher.Publish(ctx, paths[item.Source.ID])
		if err != nil {
			if errors.Is(err, shared.ErrPublishFailed) || errors.Is(err, shared.ErrPublishTimeout) {
				return nil, fmt.Errorf("%w (item %q)", err, item.Title)
			}
			return nil, fmt.Errorf("%w: item %q: %v", shared.ErrPublishFailed, item.Title, err)
		}
		assets[item.Source.ID] = asset
	}

	return assets, nil
}

// commit runs the COMMITTING stage: the full replacement chapter list in
// position order, written in one ReplaceItems call. Kept chapters pass
// through untouched so card-side metadata survives.
func (e *CardEngine) commit(ctx context.Context, progress chan<- ProgressUpdate, result *SyncRunResult, assets map[string]*models.Asset) error {
	items := make([]models.TargetItem, 0, result.Plan.KeepCount+result.Plan.AddCount)

	for _, item := range result.Plan.Items {
		switch item.Action {
		case plan.Keep:
			items = append(items, *item.Target)
		case plan.Add:
			asset := assets[item.Source.ID]
			items = append(items, models.TargetItem{
				Key:      shared.GenerateID(),
				Title:    item.Title,
				MediaRef: asset.Ref,
				Duration: asset.Duration,
				FileSize: asset.FileSize,
			})
		}
	}

	e.sendProgress(progress, commitUpdate(result.TargetName, len(items)))
	if err := e.card.ReplaceItems(ctx, result.TargetID, items); err != nil {
		if errors.Is(err, shared.ErrCommitFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", shared.ErrCommitFailed, err)
	}

	return nil
}
