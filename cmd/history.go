package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spotfill/internal/repositories"
	"github.com/desertthunder/spotfill/internal/shared"
	"github.com/urfave/cli/v3"
)

// openHistory opens the history database and runs pending migrations.
func (r *Runner) openHistory() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// HistoryList lists recorded fill runs, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewRunRepository(db)

	criteria := map[string]any{}
	if playlistID := cmd.String("playlist"); playlistID != "" {
		criteria["playlist_id"] = playlistID
	}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = int(limit)
	}

	runs, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		r.writePlain("No recorded runs.\n")
		return nil
	}

	if cmd.Bool("json") {
		entries := make([]map[string]any, 0, len(runs))
		for _, run := range runs {
			entries = append(entries, map[string]any{
				"id":             run.ID(),
				"playlist_id":    run.PlaylistID(),
				"tracks_file":    run.TracksFile(),
				"input_count":    run.InputCount(),
				"existing_count": run.ExistingCount(),
				"added_count":    run.AddedCount(),
				"batch_count":    run.BatchCount(),
				"created_at":     run.CreatedAt(),
			})
		}
		return r.writeJSON(entries, true)
	}

	r.writePlain("Found %d recorded runs:\n\n", len(runs))
	for _, run := range runs {
		r.writePlain("%s  %s\n", run.CreatedAt().Format(time.RFC3339), run.ID())
		r.writePlain("   Playlist: %s\n", run.PlaylistID())
		r.writePlain("   Input file: %s\n", run.TracksFile())
		r.writePlain("   Added %d of %d (%d already present, %d batches)\n\n",
			run.AddedCount(), run.InputCount(), run.ExistingCount(), run.BatchCount())
	}

	return nil
}

// HistoryShow prints a recorded run and its appended tracks.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	runID := cmd.StringArg("id")
	if runID == "" {
		return fmt.Errorf("%w: run ID", shared.ErrMissingArgument)
	}

	db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewRunRepository(db)

	run, err := repo.Get(runID)
	if err != nil {
		return fmt.Errorf("failed to fetch run: %w", err)
	}

	tracks, err := repo.Tracks(runID)
	if err != nil {
		return fmt.Errorf("failed to fetch run tracks: %w", err)
	}

	r.writePlainHeader(fmt.Sprintf("Run %s", run.ID()))
	r.writePlain("Recorded: %s\n", run.CreatedAt().Format(time.RFC3339))
	r.writePlain("Playlist: %s\n", run.PlaylistID())
	r.writePlain("Input file: %s\n", run.TracksFile())
	r.writePlain("Input identifiers: %d\n", run.InputCount())
	r.writePlain("Already present: %d\n", run.ExistingCount())
	r.writePlain("Added: %d tracks in %d batches\n", run.AddedCount(), run.BatchCount())

	if len(tracks) > 0 {
		r.writePlain("\nAppended tracks:\n")
		for i, id := range tracks {
			r.writePlain("%d. %s\n", i+1, id)
		}
	}

	return nil
}
