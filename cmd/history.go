package main

import (
	"context"
	"fmt"
	"time"

	"github.com/glyn/stream-inspector/internal/formatter"
	"github.com/glyn/stream-inspector/internal/repositories"
	"github.com/urfave/cli/v3"
)

// History lists recorded runs, the actions of one run with --run, or clears old runs with --clear-before.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.store()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	repo := repositories.NewRunRepository(db)

	if age := cmd.Duration("clear-before"); age > 0 {
		cutoff := time.Now().Add(-age)
		n, err := repo.DeleteRunsBefore(ctx, cutoff)
		if err != nil {
			return err
		}
		r.logger.Debug("cleared runs", "before", cutoff, "count", n)
		return r.writePlain("✓ Deleted %d runs started before %s\n", n, cutoff.Format(time.RFC3339))
	}

	if id := cmd.String("run"); id != "" {
		run, err := repo.GetRun(ctx, id)
		if err != nil {
			return err
		}
		actions, err := repo.ListActions(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(map[string]any{"run": run, "actions": actions}, true)
		}
		r.writePlainHeader(fmt.Sprintf("Run %s (%s, %s)", run.ID, run.Command, run.Status))
		return r.writeBytes(formatter.ActionsToText(actions))
	}

	runs, err := repo.ListRuns(ctx, repositories.RunFilter{
		PlaylistID: cmd.String("playlist"),
		Command:    cmd.String("command"),
		Limit:      cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}
	if len(runs) == 0 {
		return r.writePlain("No runs recorded\n")
	}
	return r.writeBytes(formatter.RunsToText(runs))
}
