package models

import "time"

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// ActionKind identifies what a recorded action did, or would have done under dry-run.
type ActionKind string

const (
	ActionReorder ActionKind = "reorder"
	ActionDelete  ActionKind = "delete"
	ActionKeep    ActionKind = "keep"
)

// Run is one invocation of sort, prune or print against a playlist.
type Run struct {
	ID          string     `json:"id"`
	Command     string     `json:"command"`
	PlaylistID  string     `json:"playlist_id"`
	DryRun      bool       `json:"dry_run"`
	MaxStreamed *int       `json:"max_streamed,omitempty"` // prune only
	Status      RunStatus  `json:"status"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Action is a single reorder, delete or keep decision taken during a [Run].
//
// Applied is false for dry-run actions and for keep decisions.
type Action struct {
	ID        string     `json:"id"`
	RunID     string     `json:"run_id"`
	Sequence  int        `json:"sequence"`
	Kind      ActionKind `json:"kind"`
	EntryID   string     `json:"entry_id"`
	VideoID   string     `json:"video_id"`
	Title     string     `json:"title"`
	Position  *int       `json:"position,omitempty"` // reorder only
	Reason    string     `json:"reason,omitempty"`   // delete and keep only
	Applied   bool       `json:"applied"`
	CreatedAt time.Time  `json:"created_at"`
}

// Duration returns how long the run took, or zero while it is still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
