// Package tasks orchestrates fetching, sorting and pruning of a single playlist.
package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glyn/stream-inspector/internal/formatter"
	"github.com/glyn/stream-inspector/internal/models"
	"github.com/glyn/stream-inspector/internal/services"
	"github.com/glyn/stream-inspector/internal/shared"
)

// Recorder persists the audit trail of a run. Implementations must be safe to call sequentially from one goroutine.
type Recorder interface {
	StartRun(ctx context.Context, run *models.Run) error
	RecordAction(ctx context.Context, action *models.Action) error
	FinishRun(ctx context.Context, run *models.Run) error
}

// SortResult describes the outcome of [PlaylistManager.Sort].
type SortResult struct {
	Original      []models.Item // Items in playlist order as fetched
	Sorted        []models.Item // Items in canonical order
	AlreadySorted bool          // True when no reorder was needed
	Reordered     int           // Reorder calls issued; zero under dry-run
	DryRun        bool
}

// PruneResult describes the outcome of [PlaylistManager.Prune].
type PruneResult struct {
	Sort      *SortResult
	Items     []models.Item     // Items re-fetched after sorting, in canonical order
	Decisions []models.Decision // One decision per item, aligned with Items
	Deleted   int               // Delete calls issued; zero under dry-run
	DryRun    bool
}

// Removals returns the decisions that remove an item.
func (r *PruneResult) Removals() []models.Decision {
	return models.Removals(r.Decisions)
}

// Options configures a [PlaylistManager].
type Options struct {
	PlaylistID string
	DryRun     bool                  // Replace every reorder and delete with a log entry
	Debug      bool                  // Dump the raw fetched list at debug level
	Logger     *log.Logger           // Defaults to [shared.NewLogger] on stderr
	Recorder   Recorder              // Optional audit trail
	Progress   chan<- ProgressUpdate // Optional; updates are dropped when the channel is full
}

// PlaylistManager applies the canonical ordering and prune policy to one playlist through a [services.Source].
//
// Remote calls are issued one at a time, in order. Reads always execute; under dry-run every mutating call is
// replaced by a report.
type PlaylistManager struct {
	source     services.Source
	playlistID string
	dryRun     bool
	debug      bool
	logger     *log.Logger
	recorder   Recorder
	progress   chan<- ProgressUpdate
}

// NewPlaylistManager creates a PlaylistManager for opts.PlaylistID.
func NewPlaylistManager(source services.Source, opts Options) (*PlaylistManager, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: playlist source not initialized", shared.ErrServiceUnavailable)
	}
	if opts.PlaylistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &PlaylistManager{
		source:     source,
		playlistID: opts.PlaylistID,
		dryRun:     opts.DryRun,
		debug:      opts.Debug,
		logger:     shared.WithLogger(logger, "playlist", opts.PlaylistID),
		recorder:   opts.Recorder,
		progress:   opts.Progress,
	}, nil
}

// PlaylistID returns the managed playlist.
func (m *PlaylistManager) PlaylistID() string { return m.playlistID }

// DryRun reports whether mutating calls are suppressed.
func (m *PlaylistManager) DryRun() bool { return m.dryRun }

// sendProgress sends a progress update through the channel without blocking.
func (m *PlaylistManager) sendProgress(update ProgressUpdate) {
	if m.progress == nil {
		return
	}
	select {
	case m.progress <- update:
	default:
	}
}

// Items fetches the playlist and the live-streaming details of every video, in playlist order.
//
// A video the platform no longer returns yields an item with no timestamps that is not blocked.
func (m *PlaylistManager) Items(ctx context.Context) ([]models.Item, error) {
	m.sendProgress(fetchEntriesUpdate(m.playlistID))

	entries, err := m.source.ListPlaylistEntries(ctx, m.playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist %s: %w", m.playlistID, err)
	}

	items := make([]models.Item, 0, len(entries))
	for i, entry := range entries {
		details, err := m.source.GetVideoDetails(ctx, entry.VideoID)
		if err != nil {
			return nil, fmt.Errorf("failed to get details of video %s: %w", entry.VideoID, err)
		}

		item := models.Item{VideoID: entry.VideoID, EntryID: entry.EntryID, Title: entry.Title}
		if details != nil {
			if !details.Found {
				m.logger.Debug("video not found", "video", entry.VideoID)
			}
			item.ScheduledStartTime = details.ScheduledStartTime
			item.ActualStartTime = details.ActualStartTime
			item.Blocked = details.Blocked
		}

		items = append(items, item)
		m.sendProgress(fetchDetailsUpdate(i+1, len(entries), item))
	}

	if m.debug {
		m.logger.Debug("playlist items", "count", len(items), "items", items)
	}
	return items, nil
}

// Sort reorders the playlist into canonical order with one reorder call per item.
//
// Nothing is written when the fetched order already matches. A reorder failure aborts the pass without rollback.
func (m *PlaylistManager) Sort(ctx context.Context) (*SortResult, error) {
	run := m.startRun(ctx, "sort", nil)
	result, err := m.sort(ctx, run)
	run.finish(ctx, err)
	return result, err
}

func (m *PlaylistManager) sort(ctx context.Context, run *runTrail) (*SortResult, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return nil, err
	}

	sorted := models.SortItems(items)
	result := &SortResult{Original: items, Sorted: sorted, DryRun: m.dryRun}

	if models.SameOrder(items, sorted) {
		m.logger.Info("playlist is already in the correct order")
		result.AlreadySorted = true
		return result, nil
	}

	if m.dryRun {
		m.logger.Info("playlist would be sorted into this order")
	}

	for i, item := range sorted {
		m.sendProgress(reorderUpdate(i+1, len(sorted), item, m.dryRun))

		if m.dryRun {
			m.logger.Info("would move playlist item", "position", i, "item", item)
			run.action(ctx, models.ActionReorder, item, &i, "", false)
			continue
		}

		m.logger.Info("moving playlist item", "position", i, "item", item)
		if err := m.source.ReorderEntry(ctx, item.EntryID, m.playlistID, item.VideoID, i); err != nil {
			return result, fmt.Errorf("failed to move %s to position %d: %w", item.VideoID, i, err)
		}
		run.action(ctx, models.ActionReorder, item, &i, "", true)
		result.Reordered++
	}

	return result, nil
}

// Prune sorts the playlist, re-fetches it and deletes every blocked, surplus streamed and unscheduled item.
//
// The first maxStreamed non-blocked streamed items, newest first, are kept. Deletes are issued in canonical order.
func (m *PlaylistManager) Prune(ctx context.Context, maxStreamed int) (*PruneResult, error) {
	run := m.startRun(ctx, "prune", &maxStreamed)
	result, err := m.prune(ctx, run, maxStreamed)
	run.finish(ctx, err)
	return result, err
}

func (m *PlaylistManager) prune(ctx context.Context, run *runTrail, maxStreamed int) (*PruneResult, error) {
	sortResult, err := m.sort(ctx, run)
	if err != nil {
		return nil, err
	}

	items, err := m.Items(ctx)
	if err != nil {
		return nil, err
	}

	sorted := models.SortItems(items)
	result := &PruneResult{Sort: sortResult, Items: sorted, DryRun: m.dryRun}
	classifier := models.NewClassifier(maxStreamed)

	for i, item := range sorted {
		d := classifier.Next(item)
		result.Decisions = append(result.Decisions, d)
		m.sendProgress(pruneUpdate(i+1, len(sorted), d))

		if !d.Reason.Remove() {
			m.logger.Info("keeping video", "item", item, "streamed", d.StreamedCount)
			run.action(ctx, models.ActionKeep, item, nil, d.Reason.String(), false)
			continue
		}

		m.logger.Info(removalMessage(d.Reason, m.dryRun), "item", item)
		if m.dryRun {
			run.action(ctx, models.ActionDelete, item, nil, d.Reason.String(), false)
			continue
		}

		if err := m.source.DeleteEntry(ctx, item.EntryID); err != nil {
			return result, fmt.Errorf("failed to delete playlist item %s (%s): %w", item.EntryID, d.Reason, err)
		}
		run.action(ctx, models.ActionDelete, item, nil, d.Reason.String(), true)
		result.Deleted++
	}

	return result, nil
}

func removalMessage(reason models.Reason, dryRun bool) string {
	var msg string
	switch reason {
	case models.ReasonBlocked:
		msg = "delete playlist item for blocked video"
	case models.ReasonSurplusStreamed:
		msg = "remove surplus streamed video from playlist"
	case models.ReasonUnscheduled:
		msg = "delete playlist item for unscheduled video"
	default:
		msg = "delete playlist item"
	}
	if dryRun {
		return "non-dry run would " + msg
	}
	return msg
}

// Print fetches the playlist and writes every item, in playlist order, to w in the given format.
func (m *PlaylistManager) Print(ctx context.Context, w io.Writer, format formatter.Format) error {
	run := m.startRun(ctx, "print", nil)

	err := func() error {
		items, err := m.Items(ctx)
		if err != nil {
			return err
		}

		data, err := formatter.Render(format, m.playlistID, items)
		if err != nil {
			return err
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()

	run.finish(ctx, err)
	return err
}

// runTrail forwards one run's events to the [Recorder]. Recording failures are logged and never fail the run.
type runTrail struct {
	m        *PlaylistManager
	run      *models.Run
	sequence int
	disabled bool
}

func (m *PlaylistManager) startRun(ctx context.Context, command string, maxStreamed *int) *runTrail {
	trail := &runTrail{m: m, disabled: m.recorder == nil}
	if trail.disabled {
		return trail
	}

	trail.run = &models.Run{
		ID:          shared.GenerateID(),
		Command:     command,
		PlaylistID:  m.playlistID,
		DryRun:      m.dryRun,
		MaxStreamed: maxStreamed,
		Status:      models.RunRunning,
		StartedAt:   time.Now().UTC(),
	}

	if err := m.recorder.StartRun(ctx, trail.run); err != nil {
		m.logger.Warn("failed to record run, audit trail disabled", "command", command, "error", err)
		trail.disabled = true
	}
	return trail
}

func (t *runTrail) action(ctx context.Context, kind models.ActionKind, item models.Item, position *int, reason string, applied bool) {
	if t.disabled {
		return
	}

	if position != nil {
		p := *position
		position = &p
	}

	action := &models.Action{
		ID:        shared.GenerateID(),
		RunID:     t.run.ID,
		Sequence:  t.sequence,
		Kind:      kind,
		EntryID:   item.EntryID,
		VideoID:   item.VideoID,
		Title:     item.Title,
		Position:  position,
		Reason:    reason,
		Applied:   applied,
		CreatedAt: time.Now().UTC(),
	}
	t.sequence++

	if err := t.m.recorder.RecordAction(ctx, action); err != nil {
		t.m.logger.Warn("failed to record action", "kind", kind, "video", item.VideoID, "error", err)
	}
}

func (t *runTrail) finish(ctx context.Context, err error) {
	if t.disabled {
		return
	}

	now := time.Now().UTC()
	t.run.FinishedAt = &now
	t.run.Status = models.RunSucceeded
	if err != nil {
		t.run.Status = models.RunFailed
		t.run.Error = err.Error()
	}

	// written even when ctx was cancelled mid-run
	if err := t.m.recorder.FinishRun(context.WithoutCancel(ctx), t.run); err != nil {
		t.m.logger.Warn("failed to record run result", "run", t.run.ID, "error", err)
	}
}
