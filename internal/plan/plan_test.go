package plan

import (
	"testing"

	"cardsync/internal/match"
	"cardsync/internal/models"
)

func sourceList(titles ...string) []models.SourceItem {
	items := make([]models.SourceItem, len(titles))
	for i, title := range titles {
		items[i] = models.SourceItem{
			ID:      title + "-id",
			Title:   title,
			Locator: "https://catalog.example/" + title,
		}
	}
	return items
}

// checkInvariants asserts the structural properties every plan must hold:
// partition of both sides, dense positions in source order, and single
// consumption of every target key.
func checkInvariants(t *testing.T, p Plan, source []models.SourceItem, target []models.TargetItem) {
	t.Helper()

	if p.KeepCount+p.AddCount != len(source) {
		t.Errorf("keep+add = %d, want %d source items", p.KeepCount+p.AddCount, len(source))
	}
	if p.KeepCount+p.RemoveCount != len(target) {
		t.Errorf("keep+remove = %d, want %d target items", p.KeepCount+p.RemoveCount, len(target))
	}

	seenKeys := make(map[string]int)
	wantPos := 1
	for _, item := range p.Items {
		switch item.Action {
		case Keep, Add:
			if item.Position != wantPos {
				t.Errorf("item %q position = %d, want %d", item.Title, item.Position, wantPos)
			}
			if item.Source == nil {
				t.Errorf("item %q: positional item without source", item.Title)
			}
			wantPos++
		case Remove:
			if item.Position != 0 {
				t.Errorf("remove item %q carries position %d", item.Title, item.Position)
			}
			if item.Source != nil {
				t.Errorf("remove item %q references a source item", item.Title)
			}
		}
		if item.Target != nil {
			seenKeys[item.Target.Key]++
		}
	}

	for key, n := range seenKeys {
		if n > 1 {
			t.Errorf("target key %q referenced by %d plan items", key, n)
		}
	}
	for _, tgt := range target {
		if seenKeys[tgt.Key] != 1 {
			t.Errorf("target key %q referenced %d times, want exactly once", tgt.Key, seenKeys[tgt.Key])
		}
	}

	// Positions sorted ascending must reproduce source order.
	i := 0
	for _, item := range p.Items {
		if item.Action == Remove {
			continue
		}
		if item.Source.ID != source[i].ID {
			t.Errorf("position %d holds source %q, want %q", item.Position, item.Source.ID, source[i].ID)
		}
		i++
	}
}

func TestGenerateEmptyTarget(t *testing.T) {
	source := sourceList("Sweet Home Alabama", "Take It Easy", "Hotel California")

	p := Generate(source, nil, match.DefaultThreshold)

	if p.AddCount != 3 || p.KeepCount != 0 || p.RemoveCount != 0 {
		t.Errorf("counts = %d/%d/%d (keep/add/remove), want 0/3/0", p.KeepCount, p.AddCount, p.RemoveCount)
	}
	checkInvariants(t, p, source, nil)
}

func TestGenerateEmptySource(t *testing.T) {
	target := []models.TargetItem{
		{Key: "a", Title: "Sweet Home Alabama", MediaRef: "asset:a"},
		{Key: "b", Title: "Take It Easy", MediaRef: "asset:b"},
	}

	p := Generate(nil, target, match.DefaultThreshold)

	if p.RemoveCount != 2 || p.KeepCount != 0 || p.AddCount != 0 {
		t.Errorf("counts = %d/%d/%d (keep/add/remove), want 0/0/2", p.KeepCount, p.AddCount, p.RemoveCount)
	}
	// Removes preserve target order.
	if p.Items[0].Target.Key != "a" || p.Items[1].Target.Key != "b" {
		t.Error("remove items not in target order")
	}
	checkInvariants(t, p, nil, target)
}

func TestGenerateCrossMatchedReorder(t *testing.T) {
	source := sourceList("Sweet Home Alabama", "Hotel California")
	target := []models.TargetItem{
		{Key: "x", Title: "Hotel California", MediaRef: "asset:x"},
		{Key: "y", Title: "Sweet Home Alabama", MediaRef: "asset:y"},
	}

	p := Generate(source, target, match.DefaultThreshold)

	if p.KeepCount != 2 || p.AddCount != 0 || p.RemoveCount != 0 {
		t.Fatalf("counts = %d/%d/%d (keep/add/remove), want 2/0/0", p.KeepCount, p.AddCount, p.RemoveCount)
	}
	if p.Items[0].Target.Key != "y" {
		t.Errorf("position 1 matched key %q, want %q", p.Items[0].Target.Key, "y")
	}
	if p.Items[1].Target.Key != "x" {
		t.Errorf("position 2 matched key %q, want %q", p.Items[1].Target.Key, "x")
	}
	checkInvariants(t, p, source, target)
}

func TestGenerateAddAndRemove(t *testing.T) {
	source := sourceList("Free Bird")
	target := []models.TargetItem{{Key: "z", Title: "Old Song", MediaRef: "asset:z"}}

	p := Generate(source, target, match.DefaultThreshold)

	if p.AddCount != 1 || p.RemoveCount != 1 || p.KeepCount != 0 {
		t.Fatalf("counts = %d/%d/%d (keep/add/remove), want 0/1/1", p.KeepCount, p.AddCount, p.RemoveCount)
	}
	if p.Items[0].Action != Add || p.Items[0].Position != 1 {
		t.Error("expected Add at position 1")
	}
	if p.Items[1].Action != Remove || p.Items[1].Target.Key != "z" {
		t.Error("expected Remove of key z")
	}
	checkInvariants(t, p, source, target)
}

// Re-planning against a committed target yields a no-change plan.
func TestGenerateIdempotent(t *testing.T) {
	source := sourceList("Sweet Home Alabama", "Take It Easy", "Hotel California")
	target := []models.TargetItem{
		{Key: "k1", Title: "Sweet Home Alabama", MediaRef: "asset:1", Icon: "icon:1"},
		{Key: "k2", Title: "Take It Easy", MediaRef: "asset:2"},
		{Key: "k3", Title: "Hotel California", MediaRef: "asset:3"},
	}

	p := Generate(source, target, match.DefaultThreshold)

	if !p.InSync() {
		t.Errorf("replan of committed target not in sync: counts %d/%d/%d", p.KeepCount, p.AddCount, p.RemoveCount)
	}
	checkInvariants(t, p, source, target)
}

// Two similar source titles must not both claim the same target chapter;
// the earlier source item wins and the later becomes an Add.
func TestGenerateSingleConsumption(t *testing.T) {
	source := sourceList("Free Bird", "Free Bird (Live)")
	target := []models.TargetItem{{Key: "fb", Title: "Free Bird", MediaRef: "asset:fb"}}

	p := Generate(source, target, match.DefaultThreshold)

	if p.Items[0].Action != Keep || p.Items[0].Target.Key != "fb" {
		t.Error("first source item should claim the target")
	}
	if p.Items[1].Action != Add {
		t.Errorf("second source item action = %v, want Add", p.Items[1].Action)
	}
	checkInvariants(t, p, source, target)
}

// Kept items must carry the original target metadata through unchanged.
func TestGenerateKeepPreservesTarget(t *testing.T) {
	source := sourceList("Hotel California")
	target := []models.TargetItem{{
		Key:      "hc",
		Title:    "Hotel California",
		MediaRef: "asset:hc",
		Duration: 391,
		FileSize: 9400123,
		Icon:     "icon:sunset",
	}}

	p := Generate(source, target, match.DefaultThreshold)

	if p.KeepCount != 1 {
		t.Fatalf("keep count = %d, want 1", p.KeepCount)
	}
	got := p.Items[0].Target
	if *got != target[0] {
		t.Errorf("kept target mutated: got %+v, want %+v", *got, target[0])
	}
}
