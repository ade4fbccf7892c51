package formatter

import (
	"strings"
	"testing"

	"cardsync/internal/match"
	"cardsync/internal/models"
	"cardsync/internal/plan"
)

func testPlan() plan.Plan {
	source := []models.SourceItem{
		{ID: "s1", Title: "Sweet Home Alabama", Locator: "https://catalog.example/s1"},
		{ID: "s2", Title: "Free Bird", Locator: "https://catalog.example/s2"},
	}
	target := []models.TargetItem{
		{Key: "k1", Title: "Sweet Home Alabama", MediaRef: "asset:1"},
		{Key: "k2", Title: "Old Song", MediaRef: "asset:2"},
	}
	return plan.Generate(source, target, match.DefaultThreshold)
}

func TestSummary(t *testing.T) {
	got := Summary(testPlan())
	want := "1 keep, 1 add, 1 remove"
	if got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(testPlan())

	for _, want := range []string{"Sweet Home Alabama", "Free Bird", "Old Song", "keep", "add", "remove"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestToCSV(t *testing.T) {
	data, err := ToCSV(testPlan())
	if err != nil {
		t.Fatalf("ToCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("CSV has %d lines, want header + 3 rows", len(lines))
	}
	if lines[0] != "Position,Action,Title,SourceID,TargetKey" {
		t.Errorf("CSV header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,keep,") {
		t.Errorf("first row = %q, want keep at position 1", lines[1])
	}
	if !strings.HasPrefix(lines[3], ",remove,") {
		t.Errorf("last row = %q, want positionless remove", lines[3])
	}
}

func TestToMarkdown(t *testing.T) {
	out := string(ToMarkdown(testPlan(), "Road Trip Mix", "Road Trip"))

	if !strings.Contains(out, "# Sync plan: Road Trip Mix → Road Trip") {
		t.Error("markdown missing title line")
	}
	if !strings.Contains(out, "| 1 | keep | Sweet Home Alabama |") {
		t.Errorf("markdown missing keep row:\n%s", out)
	}
}
