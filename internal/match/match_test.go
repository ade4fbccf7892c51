package match

import (
	"testing"
)

type titled struct {
	name string
}

func names(items []string) ([]titled, func(titled) string) {
	ts := make([]titled, len(items))
	for i, s := range items {
		ts[i] = titled{name: s}
	}
	return ts, func(t titled) string { return t.name }
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "Hotel California", b: "Hotel California", want: 0},
		{name: "case insensitive", a: "hotel california", b: "HOTEL CALIFORNIA", want: 0},
		{name: "whitespace collapsed", a: "Hotel   California", b: "Hotel California", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "completely different", a: "abcd", b: "wxyz", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceRange(t *testing.T) {
	pairs := [][2]string{
		{"Sweet Home Alabama", "Sweet Home Alabame"},
		{"Take It Easy", "Take It Easy (Remastered)"},
		{"Free Bird", "Freebird"},
		{"", "something"},
	}

	for _, p := range pairs {
		got := Distance(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Distance(%q, %q) = %v, outside [0,1]", p[0], p[1], got)
		}
	}
}

func TestBest(t *testing.T) {
	candidates, title := names([]string{"Hotel California", "Take It Easy", "Free Bird"})

	got, ok := Best("hotel california", candidates, title, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.name != "Hotel California" {
		t.Errorf("Best = %q, want %q", got.name, "Hotel California")
	}
}

func TestBestNoMatch(t *testing.T) {
	candidates, title := names([]string{"Hotel California", "Take It Easy"})

	if _, ok := Best("Stairway to Heaven", candidates, title, DefaultThreshold); ok {
		t.Error("expected no match for unrelated query")
	}
}

func TestBestEmptyCandidates(t *testing.T) {
	candidates, title := names(nil)

	if _, ok := Best("anything", candidates, title, DefaultThreshold); ok {
		t.Error("expected no match with empty candidate set")
	}
}

// A score exactly at the threshold must be rejected: the accept test is
// strictly less-than.
func TestThresholdBoundary(t *testing.T) {
	// "ab" vs "aX" has distance 1/2 = 0.5 exactly.
	candidates, title := names([]string{"aX"})

	if _, ok := Best("ab", candidates, title, 0.5); ok {
		t.Error("score equal to threshold must be rejected")
	}
	if _, ok := Best("ab", candidates, title, 0.51); !ok {
		t.Error("score just below threshold must be accepted")
	}
}

// Equal best scores keep the candidate appearing earlier in the list.
func TestBestTieBreak(t *testing.T) {
	// Both candidates are distance 0.25 from "abcd".
	candidates, title := names([]string{"abcX", "abcY"})

	got, ok := Best("abcd", candidates, title, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.name != "abcX" {
		t.Errorf("tie-break picked %q, want first candidate %q", got.name, "abcX")
	}
}

func TestRank(t *testing.T) {
	candidates, title := names([]string{"Free Bird", "Freebird", "Hotel California"})

	ranked := Rank("Free Bird", candidates, title, DefaultThreshold)
	if len(ranked) != 2 {
		t.Fatalf("Rank returned %d candidates, want 2", len(ranked))
	}
	if ranked[0].Value.name != "Free Bird" {
		t.Errorf("best ranked = %q, want %q", ranked[0].Value.name, "Free Bird")
	}
	if ranked[0].Score > ranked[1].Score {
		t.Error("Rank output not in ascending score order")
	}
}

func TestRankStable(t *testing.T) {
	candidates, title := names([]string{"abcX", "abcY", "abcZ"})

	ranked := Rank("abcd", candidates, title, DefaultThreshold)
	if len(ranked) != 3 {
		t.Fatalf("Rank returned %d candidates, want 3", len(ranked))
	}
	for i, want := range []string{"abcX", "abcY", "abcZ"} {
		if ranked[i].Value.name != want {
			t.Errorf("ranked[%d] = %q, want %q (stable order)", i, ranked[i].Value.name, want)
		}
	}
}
