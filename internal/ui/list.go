package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/glyn/stream-inspector/internal/models"
	"github.com/glyn/stream-inspector/internal/shared"
)

var _ list.Item = decisionItem{}

// decisionItem wraps a [models.Decision] and its canonical position to implement [list.Item].
type decisionItem struct {
	position int
	decision models.Decision
}

func (i decisionItem) FilterValue() string {
	return i.decision.Item.Title + " " + i.decision.Item.VideoID
}

func (i decisionItem) Title() string {
	title := i.decision.Item.Title
	if title == "" {
		title = i.decision.Item.VideoID
	}
	return fmt.Sprintf("%d. %s", i.position, title)
}

func (i decisionItem) Description() string {
	it := i.decision.Item
	var when string
	switch it.Tier() {
	case models.TierStreamed:
		when = "streamed " + shared.FormatTime(it.ActualStartTime)
	case models.TierScheduled:
		when = "scheduled " + shared.FormatTime(it.ScheduledStartTime)
	default:
		when = "not scheduled"
	}
	return fmt.Sprintf("%s • %s", when, styles.reasonStyle(i.decision.Reason).Render(i.decision.Reason.String()))
}

func decisionItems(decisions []models.Decision, removalsOnly bool) []list.Item {
	items := make([]list.Item, 0, len(decisions))
	for i, d := range decisions {
		if removalsOnly && !d.Reason.Remove() {
			continue
		}
		items = append(items, decisionItem{position: i, decision: d})
	}
	return items
}
