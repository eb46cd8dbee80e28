package tasks

import (
	"fmt"

	"github.com/glyn/stream-inspector/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data, the [models.Item] or [models.Decision] being handled
}

// Operation phase enumeration
type Phase int

const (
	FetchItems Phase = iota
	Reorder
	Prune
)

func (p Phase) String() string {
	switch p {
	case FetchItems:
		return "fetch"
	case Reorder:
		return "reorder"
	case Prune:
		return "prune"
	default:
		return ""
	}
}

func fetchEntriesUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    0,
		Total:   0,
		Message: fmt.Sprintf("Fetching playlist %s...", playlistID),
	}
}

func fetchDetailsUpdate(step, total int, item models.Item) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, item.VideoID),
		Data:    item,
	}
}

func reorderUpdate(step, total int, item models.Item, dryRun bool) ProgressUpdate {
	verb := "Moving"
	if dryRun {
		verb = "Would move"
	}
	return ProgressUpdate{
		Phase:   Reorder,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s to position %d", step, total, verb, item, step-1),
		Data:    item,
	}
}

func pruneUpdate(step, total int, d models.Decision) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Prune,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, d.Reason, d.Item),
		Data:    d,
	}
}
