package tasks

import (
	"fmt"

	"cardsync/internal/models"
	"cardsync/internal/plan"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Planning Phase = iota
	Confirming
	Fetching
	Publishing
	Committing
	Persisting
)

func (p Phase) String() string {
	switch p {
	case Planning:
		return "planning"
	case Confirming:
		return "confirming"
	case Fetching:
		return "fetching"
	case Publishing:
		return "publishing"
	case Committing:
		return "committing"
	case Persisting:
		return "persisting"
	default:
		return ""
	}
}

func listSourceUpdate(ref string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Planning,
		Step:    1,
		Total:   3,
		Message: fmt.Sprintf("Fetching source playlist (%s)...", ref),
	}
}

func foundSourceUpdate(name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Planning,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("Found playlist: %s (%d items)", name, count),
	}
}

func readTargetUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Planning,
		Step:    3,
		Total:   3,
		Message: fmt.Sprintf("Reading card %q...", name),
	}
}

func planReadyUpdate(p plan.Plan) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Confirming,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Plan ready: %d keep, %d add, %d remove", p.KeepCount, p.AddCount, p.RemoveCount),
		Data:    p,
	}
}

func fetchItemUpdate(step, total int, item models.SourceItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Fetching,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching: %s", step, total, item.Title),
	}
}

func publishItemUpdate(step, total int, item models.SourceItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Publishing,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Publishing: %s", step, total, item.Title),
	}
}

func commitUpdate(name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Committing,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d chapters to %q...", count, name),
	}
}

func persistUpdate(sourceName, targetName string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Persisting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Remembering %s → %s", sourceName, targetName),
	}
}
