// Package resolve decides which card container a sync run targets.
//
// Resolution order: explicit name hint, remembered association, interactive
// fallback. The resolver is a plain decision procedure over collaborator
// data plus one injected choice point; it keeps no state and never retries.
package resolve

import (
	"context"
	"fmt"

	"cardsync/internal/match"
	"cardsync/internal/models"
	"cardsync/internal/prompt"
	"cardsync/internal/services"
	"cardsync/internal/shared"
	"cardsync/internal/store"
)

// Resolution identifies the chosen container.
type Resolution struct {
	TargetID   string
	TargetName string
	Created    bool // True when the container was created for this run
}

// Resolver picks the target container for a sync run.
type Resolver struct {
	card      services.CardClient
	links     store.Links
	prompter  prompt.Prompter
	threshold float64
}

// New creates a Resolver. threshold <= 0 falls back to the matcher default.
func New(card services.CardClient, links store.Links, prompter prompt.Prompter, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}
	return &Resolver{card: card, links: links, prompter: prompter, threshold: threshold}
}

// Resolve determines the target container for the given source playlist.
// A decline at the creation or reuse prompts surfaces shared.ErrCancelled.
func (r *Resolver) Resolve(ctx context.Context, hint, sourceID, sourceName string) (*Resolution, error) {
	if hint != "" {
		return r.fromHint(ctx, hint)
	}

	if res, err := r.fromAssociation(sourceID); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}

	return r.interactive(ctx, sourceName)
}

// fromHint fuzzy-matches the operator-supplied name against all containers.
func (r *Resolver) fromHint(ctx context.Context, hint string) (*Resolution, error) {
	containers, err := r.card.ListContainers(ctx)
	if err != nil {
		return nil, err
	}

	name := func(c models.Container) string { return c.Name }
	matches := match.Rank(hint, containers, name, r.threshold)

	switch len(matches) {
	case 0:
		ok, err := r.prompter.Confirm(fmt.Sprintf("No card named %q found. Create it?", hint))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.ErrCancelled
		}
		return r.create(ctx, hint)

	case 1:
		c := matches[0].Value
		return &Resolution{TargetID: c.ID, TargetName: c.Name}, nil

	default:
		// Several plausible cards: one explicit pick, no further fuzzing.
		choices := make([]string, len(matches))
		for i, m := range matches {
			choices[i] = m.Value.Name
		}
		idx, err := r.prompter.SelectOne(fmt.Sprintf("Multiple cards match %q:", hint), choices)
		if err != nil {
			return nil, err
		}
		c := matches[idx].Value
		return &Resolution{TargetID: c.ID, TargetName: c.Name}, nil
	}
}

// fromAssociation offers to reuse the container this source was last synced
// to. A decline falls through (nil, nil) to the interactive path.
func (r *Resolver) fromAssociation(sourceID string) (*Resolution, error) {
	assoc, err := r.links.Get(sourceID)
	if err != nil {
		return nil, err
	}
	if assoc == nil {
		return nil, nil
	}

	ok, err := r.prompter.Confirm(fmt.Sprintf("Sync to %q again (last synced %s)?", assoc.TargetName, assoc.LastSyncedAt.Format("2006-01-02")))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return &Resolution{TargetID: assoc.TargetID, TargetName: assoc.TargetName}, nil
}

// interactive presents "create new" plus every existing container.
func (r *Resolver) interactive(ctx context.Context, sourceName string) (*Resolution, error) {
	containers, err := r.card.ListContainers(ctx)
	if err != nil {
		return nil, err
	}

	choices := make([]string, 0, len(containers)+1)
	choices = append(choices, "Create a new card")
	for _, c := range containers {
		choices = append(choices, c.Name)
	}

	idx, err := r.prompter.SelectOne("Choose a destination card:", choices)
	if err != nil {
		return nil, err
	}

	if idx == 0 {
		name, err := r.prompter.FreeText("Name for the new card:", sourceName)
		if err != nil {
			return nil, err
		}
		return r.create(ctx, name)
	}

	c := containers[idx-1]
	return &Resolution{TargetID: c.ID, TargetName: c.Name}, nil
}

func (r *Resolver) create(ctx context.Context, name string) (*Resolution, error) {
	created, err := r.card.CreateContainer(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Resolution{TargetID: created.ID, TargetName: created.Name, Created: true}, nil
}
