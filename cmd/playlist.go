package main

import (
	"context"
	"fmt"

	"github.com/glyn/stream-inspector/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Items fetches the playlist and writes its items in playlist order.
func (r *Runner) Items(ctx context.Context, cmd *cli.Command) error {
	manager, err := r.manager(ctx, cmd, nil)
	if err != nil {
		return err
	}

	items, err := manager.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Playlist %s (%d items)", manager.PlaylistID(), len(items)))
	return r.writeBytes(formatter.ItemsToText(items))
}

// Sort puts the playlist into canonical order.
func (r *Runner) Sort(ctx context.Context, cmd *cli.Command) error {
	manager, err := r.manager(ctx, cmd, nil)
	if err != nil {
		return err
	}

	result, err := manager.Sort(ctx)
	if err != nil {
		return fmt.Errorf("failed to sort playlist: %w", err)
	}

	switch {
	case result.AlreadySorted:
		return r.writePlain("✓ Playlist is already in the correct order (%d items)\n", len(result.Sorted))
	case result.DryRun:
		r.writePlainHeader("Playlist would be sorted into this order")
		return r.writeBytes(formatter.ItemsToText(result.Sorted))
	default:
		return r.writePlain("✓ Reordered %d items\n", result.Reordered)
	}
}

// Prune sorts the playlist and then removes blocked, unscheduled and surplus streamed videos.
func (r *Runner) Prune(ctx context.Context, cmd *cli.Command) error {
	maxStreamed, err := r.maxStreamed(cmd)
	if err != nil {
		return err
	}

	manager, err := r.manager(ctx, cmd, nil)
	if err != nil {
		return err
	}

	result, err := manager.Prune(ctx, maxStreamed)
	if err != nil {
		return fmt.Errorf("failed to prune playlist: %w", err)
	}

	removals := result.Removals()
	if result.DryRun {
		r.writePlainHeader(fmt.Sprintf("Prune decisions (max streamed %d)", maxStreamed))
		if err := r.writeBytes(formatter.DecisionsToText(result.Decisions)); err != nil {
			return err
		}
		return r.writePlainln("%d of %d items would be removed", len(removals), len(result.Items))
	}

	return r.writePlain("✓ Deleted %d of %d items\n", result.Deleted, len(result.Items))
}

// Print writes every playlist item with identifiers, timestamps and flags in the requested format.
func (r *Runner) Print(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	manager, err := r.manager(ctx, cmd, nil)
	if err != nil {
		return err
	}

	if err := manager.Print(ctx, r.output, format); err != nil {
		return fmt.Errorf("failed to print playlist: %w", err)
	}
	return nil
}
