// Package models defines the playlist entry snapshot and the pure policy applied to it.
//
// # Items
//
// An [Item] is one playlist membership as fetched from the data source: the entry and video
// identifiers, the title, the optional live-streaming timestamps and the region-block flag.
// Items are rebuilt on every fetch and never mutated by the policy functions.
//
// # Canonical Order
//
// Every item falls into exactly one [Tier]:
//  1. [TierStreamed] : actual start time present, newest stream first
//  2. [TierScheduled] : no actual start time but a scheduled one, newest schedule first
//  3. [TierUnscheduled] : neither timestamp, fetched order preserved
//
// [Compare] is a single three-way comparator over that order and [SortItems] applies it with a
// stable sort, so equal items keep their fetched relative order and sorting is idempotent.
//
// # Prune Policy
//
// A [Classifier] walks the canonically ordered items once and assigns each a [Reason]:
// [ReasonBlocked] first, then [ReasonSurplusStreamed] once more than the configured number of
// streamed items has been kept, then [ReasonUnscheduled]; everything else is [ReasonKeep].
package models
