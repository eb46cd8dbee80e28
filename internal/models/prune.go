package models

// Reason is the outcome of classifying one item for pruning.
type Reason int

const (
	ReasonKeep Reason = iota
	ReasonBlocked
	ReasonSurplusStreamed
	ReasonUnscheduled
)

func (r Reason) String() string {
	switch r {
	case ReasonKeep:
		return "keep"
	case ReasonBlocked:
		return "blocked"
	case ReasonSurplusStreamed:
		return "surplus streamed"
	case ReasonUnscheduled:
		return "unscheduled"
	default:
		return ""
	}
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Remove reports whether the item should be deleted from the playlist.
func (r Reason) Remove() bool { return r != ReasonKeep }

// Decision pairs an item with its prune outcome.
//
// StreamedCount is the running number of non-blocked streamed items seen so far, including this one
// when it is streamed.
type Decision struct {
	Item          Item   `json:"item"`
	Reason        Reason `json:"reason"`
	StreamedCount int    `json:"streamed_count"`
}

// Classifier walks canonically ordered items, keeping at most MaxStreamed streamed items.
//
// A zero Classifier removes every streamed item. Items must be fed in the order produced by [SortItems].
type Classifier struct {
	MaxStreamed int
	streamed    int
}

// NewClassifier returns a Classifier with a fresh streamed counter.
func NewClassifier(maxStreamed int) *Classifier {
	return &Classifier{MaxStreamed: maxStreamed}
}

// Next classifies the next item. Blocked takes precedence over every other reason and does not
// count towards the streamed cap.
func (c *Classifier) Next(item Item) Decision {
	d := Decision{Item: item}

	switch {
	case item.Blocked:
		d.Reason = ReasonBlocked
	case item.Streamed():
		c.streamed++
		if c.streamed > c.MaxStreamed {
			d.Reason = ReasonSurplusStreamed
		}
	case !item.Scheduled():
		d.Reason = ReasonUnscheduled
	}

	d.StreamedCount = c.streamed
	return d
}

// Classify returns one decision per item, in the same order.
func Classify(sorted []Item, maxStreamed int) []Decision {
	c := NewClassifier(maxStreamed)
	decisions := make([]Decision, len(sorted))
	for i, item := range sorted {
		decisions[i] = c.Next(item)
	}
	return decisions
}

// Removals filters decisions down to the items that should be deleted.
func Removals(decisions []Decision) []Decision {
	var out []Decision
	for _, d := range decisions {
		if d.Reason.Remove() {
			out = append(out, d)
		}
	}
	return out
}
