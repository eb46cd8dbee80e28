package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/glyn/stream-inspector/internal/shared"
	"github.com/glyn/stream-inspector/internal/tasks"
	"github.com/glyn/stream-inspector/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the read-only terminal UI over the canonical order and prune decisions.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	maxStreamed, err := r.maxStreamed(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/stream-inspector-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	progress := make(chan tasks.ProgressUpdate, 16)
	manager, err := r.manager(ctx, cmd, progress)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, manager, maxStreamed, progress)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
