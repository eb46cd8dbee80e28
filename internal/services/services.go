// package services defines interface Source for the remote playlist data source
//
// YouTube Data API v3
package services

import (
	"context"
	"time"
)

// Source defines the remote capabilities the playlist manager consumes.
//
// Implementations own pagination, authentication and request pacing.
// Every method is a single blocking call; callers issue them sequentially.
type Source interface {
	// ListPlaylistEntries returns every entry of the playlist in its current remote order,
	// following pagination until exhausted.
	ListPlaylistEntries(ctx context.Context, playlistID string) ([]PlaylistEntry, error)

	// GetVideoDetails returns the live-streaming and region restriction state of a video.
	// A video unknown to the platform (e.g. deleted) yields a zero [VideoDetails] with Found unset.
	GetVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error)

	// ReorderEntry moves a playlist entry to the zero-based position.
	ReorderEntry(ctx context.Context, entryID, playlistID, videoID string, position int) error

	// DeleteEntry removes a playlist entry.
	DeleteEntry(ctx context.Context, entryID string) error

	// Name returns the name of the source (e.g., "YouTube")
	Name() string
}

// PlaylistEntry is one membership of a video in a playlist.
type PlaylistEntry struct {
	EntryID string
	VideoID string
	Title   string
}

// VideoDetails holds the per-video metadata relevant to ordering and pruning.
type VideoDetails struct {
	VideoID            string
	Found              bool
	ScheduledStartTime *time.Time
	ActualStartTime    *time.Time
	Blocked            bool
}
