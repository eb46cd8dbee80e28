package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glyn/stream-inspector/internal/models"
)

const runColumns = `id, command, playlist_id, dry_run, max_streamed, status, error, started_at, finished_at`

const actionColumns = `id, run_id, sequence, kind, entry_id, video_id, title, position, reason, applied, created_at`

// RunRepository persists runs and their actions. It satisfies tasks.Recorder.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// StartRun inserts a run in the running state.
func (r *RunRepository) StartRun(ctx context.Context, run *models.Run) error {
	if run.ID == "" || run.Command == "" || run.PlaylistID == "" {
		return fmt.Errorf("validation failed: run requires id, command and playlist id")
	}
	if run.Status == "" {
		run.Status = models.RunRunning
	}

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Command,
		run.PlaylistID,
		run.DryRun,
		nullInt(run.MaxStreamed),
		string(run.Status),
		nullString(run.Error),
		run.StartedAt,
		nullTime(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final status, error and finish time of a run.
func (r *RunRepository) FinishRun(ctx context.Context, run *models.Run) error {
	query := `UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(run.Status), nullString(run.Error), nullTime(run.FinishedAt), run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

// RecordAction inserts one action of a run.
func (r *RunRepository) RecordAction(ctx context.Context, action *models.Action) error {
	if action.ID == "" || action.RunID == "" {
		return fmt.Errorf("validation failed: action requires id and run id")
	}

	query := `INSERT INTO actions (` + actionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		action.ID,
		action.RunID,
		action.Sequence,
		string(action.Kind),
		action.EntryID,
		action.VideoID,
		action.Title,
		nullInt(action.Position),
		nullString(action.Reason),
		action.Applied,
		action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert action: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// RunFilter narrows [RunRepository.ListRuns]. Zero values match everything; Limit 0 means no limit.
type RunFilter struct {
	PlaylistID string
	Command    string
	Limit      int
}

// ListRuns returns runs newest first.
func (r *RunRepository) ListRuns(ctx context.Context, filter RunFilter) ([]models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1 = 1`
	args := []any{}

	if filter.PlaylistID != "" {
		query += " AND playlist_id = ?"
		args = append(args, filter.PlaylistID)
	}
	if filter.Command != "" {
		query += " AND command = ?"
		args = append(args, filter.Command)
	}

	query += " ORDER BY started_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// ListActions returns the actions of a run in sequence order.
func (r *RunRepository) ListActions(ctx context.Context, runID string) ([]models.Action, error) {
	query := `SELECT ` + actionColumns + ` FROM actions WHERE run_id = ? ORDER BY sequence ASC`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	var actions []models.Action
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *action)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return actions, nil
}

// DeleteRunsBefore removes runs started before cutoff along with their actions, returning the number of runs removed.
func (r *RunRepository) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

func scanRun(row scanner) (*models.Run, error) {
	var (
		run         models.Run
		status      string
		maxStreamed sql.NullInt64
		errMsg      sql.NullString
		finishedAt  sql.NullTime
	)

	err := row.Scan(&run.ID, &run.Command, &run.PlaylistID, &run.DryRun, &maxStreamed, &status, &errMsg, &run.StartedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Status = models.RunStatus(status)
	run.MaxStreamed = intPtr(maxStreamed)
	run.Error = errMsg.String
	run.FinishedAt = timePtr(finishedAt)
	return &run, nil
}

func scanAction(row scanner) (*models.Action, error) {
	var (
		action   models.Action
		kind     string
		position sql.NullInt64
		reason   sql.NullString
	)

	err := row.Scan(&action.ID, &action.RunID, &action.Sequence, &kind, &action.EntryID, &action.VideoID, &action.Title,
		&position, &reason, &action.Applied, &action.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan action: %w", err)
	}

	action.Kind = models.ActionKind(kind)
	action.Position = intPtr(position)
	action.Reason = reason.String
	return &action, nil
}
