// Package plan classifies every source and target item of a sync run as
// kept, added, or removed.
//
// Generation is pure and deterministic: no I/O, no clock, and a fixed
// candidate order so repeated runs over the same inputs yield identical
// plans.
package plan

import (
	"cardsync/internal/match"
	"cardsync/internal/models"
)

// Action classifies one plan item.
type Action int

const (
	Keep Action = iota
	Add
	Remove
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return ""
	}
}

// Item is one classified entry of a sync plan.
//
// Position is 1-based, dense, and set only for Keep and Add items, matching
// the source order. Remove items carry Position 0 and sit after the
// positional sequence in the target's original order.
type Item struct {
	Position int
	Action   Action
	Title    string
	Source   *models.SourceItem // Set for Keep and Add
	Target   *models.TargetItem // Set for Keep and Remove
}

// Plan is the full keep/add/remove reconciliation between a source playlist
// and a target container.
type Plan struct {
	Items       []Item
	KeepCount   int
	AddCount    int
	RemoveCount int
}

// InSync reports whether the plan requires no changes.
func (p Plan) InSync() bool {
	return p.AddCount == 0 && p.RemoveCount == 0
}

// Generate produces the sync plan for the given ordered source and target
// lists using approximate title matching with the given threshold.
//
// Matching proceeds strictly in source order so the first source item that
// could plausibly match a target chapter claims it; each target key is
// consumed at most once. Targets never claimed come out as Remove items.
func Generate(source []models.SourceItem, target []models.TargetItem, threshold float64) Plan {
	p := Plan{Items: make([]Item, 0, len(source)+len(target))}
	consumed := make(map[string]bool, len(target))

	title := func(t models.TargetItem) string { return t.Title }

	for i := range source {
		src := source[i]

		candidates := make([]models.TargetItem, 0, len(target))
		for _, t := range target {
			if !consumed[t.Key] {
				candidates = append(candidates, t)
			}
		}

		if matched, ok := match.Best(src.Title, candidates, title, threshold); ok {
			consumed[matched.Key] = true
			p.Items = append(p.Items, Item{
				Position: i + 1,
				Action:   Keep,
				Title:    src.Title,
				Source:   &src,
				Target:   &matched,
			})
			p.KeepCount++
			continue
		}

		p.Items = append(p.Items, Item{
			Position: i + 1,
			Action:   Add,
			Title:    src.Title,
			Source:   &src,
		})
		p.AddCount++
	}

	for i := range target {
		t := target[i]
		if consumed[t.Key] {
			continue
		}
		p.Items = append(p.Items, Item{
			Action: Remove,
			Title:  t.Title,
			Target: &t,
		})
		p.RemoveCount++
	}

	return p
}
