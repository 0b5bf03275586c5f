package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotfill/internal/shared"
	"github.com/desertthunder/spotfill/internal/tracklist"
	"github.com/desertthunder/spotfill/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist filling.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	playlistID, tracksFile, err := r.syncTarget(cmd)
	if err != nil {
		return err
	}

	ids, err := tracklist.ReadFile(tracksFile)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if err := r.ensureAuthenticated(ctx, cmd); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotfill-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	opts := fillOpts(cmd)
	model := ui.NewModel(ctx, r.spotify, r.engine, playlistID, ids, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
