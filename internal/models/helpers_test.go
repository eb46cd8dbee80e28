package models

import (
	"fmt"
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return &ts
}

func newItem(n int) Item {
	return Item{
		VideoID: fmt.Sprintf("v%d", n),
		EntryID: fmt.Sprintf("pii%d", n),
		Title:   fmt.Sprintf("video %d", n),
	}
}

func newScheduledItem(t *testing.T, n int) Item {
	i := newItem(n)
	i.ScheduledStartTime = mustParse(t, fmt.Sprintf("2021-09-30T10:55:0%d+01:00", n))
	return i
}

func newStreamedItem(t *testing.T, n int) Item {
	i := newScheduledItem(t, n)
	i.ActualStartTime = mustParse(t, fmt.Sprintf("2021-09-30T10:56:0%d+01:00", n))
	return i
}

func videoIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.VideoID
	}
	return ids
}

func assertVideoIDs(t *testing.T, items []Item, want ...string) {
	t.Helper()
	got := videoIDs(items)
	if len(got) != len(want) {
		t.Fatalf("expected %d items %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
