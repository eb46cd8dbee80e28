package models

import (
	"fmt"
	"time"
)

// Item is a snapshot of one playlist entry and the live-streaming state of its video.
type Item struct {
	VideoID            string     `json:"video_id"`
	EntryID            string     `json:"entry_id"`
	Title              string     `json:"title"`
	ScheduledStartTime *time.Time `json:"scheduled_start_time,omitempty"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	Blocked            bool       `json:"blocked"`
}

// Streamed reports whether the video has been live, regardless of any schedule.
func (i Item) Streamed() bool { return i.ActualStartTime != nil }

// Scheduled reports whether the video was ever scheduled as a live stream.
func (i Item) Scheduled() bool { return i.ScheduledStartTime != nil }

// Invalid reports whether the item lacks a scheduled start time.
func (i Item) Invalid() bool { return i.ScheduledStartTime == nil }

// Tier returns the ordering tier of the item.
func (i Item) Tier() Tier {
	switch {
	case i.ActualStartTime != nil:
		return TierStreamed
	case i.ScheduledStartTime != nil:
		return TierScheduled
	default:
		return TierUnscheduled
	}
}

func (i Item) String() string {
	return fmt.Sprintf("(%s: %s)", i.VideoID, i.Title)
}

// Tier partitions items for ordering. Lower tiers sort first.
type Tier int

const (
	TierStreamed Tier = iota
	TierScheduled
	TierUnscheduled
)

func (t Tier) String() string {
	switch t {
	case TierStreamed:
		return "streamed"
	case TierScheduled:
		return "scheduled"
	case TierUnscheduled:
		return "unscheduled"
	default:
		return ""
	}
}
