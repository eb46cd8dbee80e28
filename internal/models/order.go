package models

import (
	"cmp"
	"slices"
)

// Compare orders a before b when it returns a negative number.
//
// Tiers sort streamed, scheduled, unscheduled. Within the streamed tier the newest actual start
// comes first; within the scheduled tier the newest scheduled start comes first. Unscheduled items
// always compare equal to each other.
func Compare(a, b Item) int {
	ta, tb := a.Tier(), b.Tier()
	if c := cmp.Compare(ta, tb); c != 0 {
		return c
	}

	switch ta {
	case TierStreamed:
		return b.ActualStartTime.Compare(*a.ActualStartTime)
	case TierScheduled:
		return b.ScheduledStartTime.Compare(*a.ScheduledStartTime)
	default:
		return 0
	}
}

// SortItems returns a copy of items in canonical order. The input is left untouched.
func SortItems(items []Item) []Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, Compare)
	return sorted
}

// SameOrder reports whether a and b list the same videos in the same order.
func SameOrder(a, b []Item) bool {
	return slices.EqualFunc(a, b, func(x, y Item) bool { return x.VideoID == y.VideoID })
}
