package models

import (
	"math/rand"
	"testing"
	"time"
)

func TestSortItems(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := SortItems(nil); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
		if got := SortItems([]Item{}); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("single item", func(t *testing.T) {
		item := newStreamedItem(t, 1)
		got := SortItems([]Item{item})
		assertVideoIDs(t, got, "v1")
		if got[0] != item {
			t.Errorf("single item should be returned unchanged")
		}
	})

	tc := []struct {
		name  string
		items func(t *testing.T) []Item
		want  []string
	}{
		{
			name:  "unstreamed scheduled newest first",
			items: func(t *testing.T) []Item { return []Item{newScheduledItem(t, 1), newScheduledItem(t, 2)} },
			want:  []string{"v2", "v1"},
		},
		{
			name:  "unstreamed scheduled already ordered",
			items: func(t *testing.T) []Item { return []Item{newScheduledItem(t, 2), newScheduledItem(t, 1)} },
			want:  []string{"v2", "v1"},
		},
		{
			name:  "scheduled before unscheduled",
			items: func(t *testing.T) []Item { return []Item{newItem(1), newScheduledItem(t, 2)} },
			want:  []string{"v2", "v1"},
		},
		{
			name:  "scheduled before unscheduled already ordered",
			items: func(t *testing.T) []Item { return []Item{newScheduledItem(t, 1), newItem(2)} },
			want:  []string{"v1", "v2"},
		},
		{
			name:  "streamed newest first",
			items: func(t *testing.T) []Item { return []Item{newStreamedItem(t, 1), newStreamedItem(t, 2)} },
			want:  []string{"v2", "v1"},
		},
		{
			name:  "streamed already ordered",
			items: func(t *testing.T) []Item { return []Item{newStreamedItem(t, 2), newStreamedItem(t, 1)} },
			want:  []string{"v2", "v1"},
		},
		{
			name:  "streamed before newer scheduled",
			items: func(t *testing.T) []Item { return []Item{newScheduledItem(t, 2), newStreamedItem(t, 1)} },
			want:  []string{"v1", "v2"},
		},
		{
			name:  "streamed before unscheduled",
			items: func(t *testing.T) []Item { return []Item{newItem(2), newStreamedItem(t, 1)} },
			want:  []string{"v1", "v2"},
		},
		{
			name:  "unscheduled keep fetched order",
			items: func(t *testing.T) []Item { return []Item{newItem(1), newItem(2), newItem(3)} },
			want:  []string{"v1", "v2", "v3"},
		},
		{
			name: "all tiers mixed",
			items: func(t *testing.T) []Item {
				return []Item{newItem(5), newScheduledItem(t, 3), newStreamedItem(t, 1), newItem(4), newScheduledItem(t, 6), newStreamedItem(t, 2)}
			},
			want: []string{"v2", "v1", "v6", "v3", "v5", "v4"},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			assertVideoIDs(t, SortItems(tt.items(t)), tt.want...)
		})
	}

	t.Run("does not mutate input", func(t *testing.T) {
		in := []Item{newItem(1), newStreamedItem(t, 2)}
		_ = SortItems(in)
		assertVideoIDs(t, in, "v1", "v2")
	})

	t.Run("equal instants across offsets tie", func(t *testing.T) {
		a := newItem(1)
		a.ActualStartTime = mustParse(t, "2021-09-30T10:56:00+01:00")
		b := newItem(2)
		b.ActualStartTime = mustParse(t, "2021-09-30T09:56:00Z")
		if c := Compare(a, b); c != 0 {
			t.Errorf("expected equal, got %d", c)
		}
		assertVideoIDs(t, SortItems([]Item{a, b}), "v1", "v2")
		assertVideoIDs(t, SortItems([]Item{b, a}), "v2", "v1")
	})

	t.Run("streamed ignores schedule", func(t *testing.T) {
		a := newStreamedItem(t, 1)
		a.ScheduledStartTime = mustParse(t, "2030-01-01T00:00:00Z")
		b := newStreamedItem(t, 2)
		b.ScheduledStartTime = nil
		assertVideoIDs(t, SortItems([]Item{a, b}), "v2", "v1")
	})
}

func TestSortItemsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2021, 9, 30, 10, 0, 0, 0, time.UTC)

	randomItems := func(n int) []Item {
		items := make([]Item, n)
		for i := range items {
			items[i] = newItem(i)
			if rng.Intn(3) > 0 {
				ts := base.Add(time.Duration(rng.Intn(5)) * time.Minute)
				items[i].ScheduledStartTime = &ts
			}
			if rng.Intn(2) == 0 {
				ts := base.Add(time.Duration(rng.Intn(5)) * time.Minute)
				items[i].ActualStartTime = &ts
			}
		}
		return items
	}

	for round := 0; round < 200; round++ {
		items := randomItems(rng.Intn(12))
		sorted := SortItems(items)

		if len(sorted) != len(items) {
			t.Fatalf("length changed: %d -> %d", len(items), len(sorted))
		}

		if again := SortItems(sorted); !SameOrder(sorted, again) {
			t.Fatalf("sort is not idempotent: %v -> %v", videoIDs(sorted), videoIDs(again))
		}

		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			if prev.Tier() > cur.Tier() {
				t.Fatalf("tier %s sorted before %s in %v", prev.Tier(), cur.Tier(), videoIDs(sorted))
			}
			if prev.Tier() != cur.Tier() {
				continue
			}
			switch cur.Tier() {
			case TierStreamed:
				if prev.ActualStartTime.Before(*cur.ActualStartTime) {
					t.Fatalf("streamed items not descending at %d", i)
				}
			case TierScheduled:
				if prev.ScheduledStartTime.Before(*cur.ScheduledStartTime) {
					t.Fatalf("scheduled items not descending at %d", i)
				}
			}
		}
	}
}

func TestSameOrder(t *testing.T) {
	a := []Item{newItem(1), newItem(2)}
	if !SameOrder(a, []Item{newItem(1), newItem(2)}) {
		t.Error("identical sequences should match")
	}
	if SameOrder(a, []Item{newItem(2), newItem(1)}) {
		t.Error("same set in different order should not match")
	}
	if SameOrder(a, a[:1]) {
		t.Error("different lengths should not match")
	}
	if !SameOrder(nil, []Item{}) {
		t.Error("nil and empty should match")
	}
}

func TestTier(t *testing.T) {
	if got := newItem(1).Tier(); got != TierUnscheduled {
		t.Errorf("expected unscheduled, got %s", got)
	}
	if got := newScheduledItem(t, 1).Tier(); got != TierScheduled {
		t.Errorf("expected scheduled, got %s", got)
	}
	if got := newStreamedItem(t, 1).Tier(); got != TierStreamed {
		t.Errorf("expected streamed, got %s", got)
	}
	if s := newItem(3).String(); s != "(v3: video 3)" {
		t.Errorf("unexpected String() %q", s)
	}
}
