package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotfill/internal/formatter"
	"github.com/desertthunder/spotfill/internal/repositories"
	"github.com/desertthunder/spotfill/internal/shared"
	"github.com/desertthunder/spotfill/internal/tasks"
	"github.com/desertthunder/spotfill/internal/tracklist"
	"github.com/urfave/cli/v3"
)

// syncTarget resolves the playlist ID and input file for a run, applying
// flag overrides on top of the loaded configuration.
func (r *Runner) syncTarget(cmd *cli.Command) (string, string, error) {
	playlistID := r.config.Sync.PlaylistID
	if p := cmd.String("playlist"); p != "" {
		playlistID = p
	}

	tracksFile := r.config.Sync.TracksFile
	if f := cmd.String("file"); f != "" {
		tracksFile = f
	}
	if tracksFile == "" {
		tracksFile = tracklist.DefaultPath
	}

	if playlistID == "" {
		return "", "", fmt.Errorf("%w: playlist_id (set sync.playlist_id, SPOTIFY_PLAYLIST_ID, or --playlist)", shared.ErrMissingConfig)
	}

	return playlistID, tracksFile, nil
}

// fillOpts builds engine options from command flags.
func fillOpts(cmd *cli.Command) tasks.FillOpts {
	return tasks.FillOpts{
		Dedupe:    cmd.Bool("dedupe"),
		DryRun:    cmd.Bool("dry-run"),
		RateLimit: cmd.Float("rate"),
	}
}

// Fill synchronizes the local identifier file into the target playlist.
//
// The run fetches a snapshot of the playlist, computes the tracks from the
// input file that are not yet present, and appends them in batches. A
// failing batch aborts the run; already-appended batches are not rolled back.
func (r *Runner) Fill(ctx context.Context, cmd *cli.Command) error {
	playlistID, tracksFile, err := r.syncTarget(cmd)
	if err != nil {
		return err
	}

	r.config.Sync.PlaylistID = playlistID
	if err := r.config.ValidateSync(); err != nil {
		return err
	}

	ids, err := tracklist.ReadFile(tracksFile)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("starting fill", "playlist", playlistID, "file", tracksFile, "identifiers", len(ids))

	if err := r.ensureAuthenticated(ctx, cmd); err != nil {
		return err
	}

	opts := fillOpts(cmd)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSnapshot:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ComputeResidue:
				r.writePlain("\n🔍 %s\n", update.Message)
			case tasks.AppendBatch:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Fill(ctx, progressCh, playlistID, ids, opts)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				close(progressCh)
				<-done
				return authErr
			}
			result, err = r.engine.Fill(ctx, progressCh, playlistID, ids, opts)
		}
	}
	close(progressCh)
	<-done

	if err != nil {
		if result != nil && result.AddedCount > 0 {
			r.writePlain("\n⚠ Run aborted after adding %d tracks in %d batches.\n", result.AddedCount, result.BatchCount)
		}
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(result, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.writeFillSummary(result)
	}

	if cmd.Bool("record") {
		if runID, recordErr := r.recordRun(result, tracksFile); recordErr != nil {
			r.logger.Warn("failed to record run", "error", recordErr)
		} else {
			r.logger.Info("run recorded", "id", runID)
		}
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		report := formatter.NewReport(result, "", tracksFile)
		if err := formatter.WriteReport(report, cmd.String("report-format"), reportPath); err != nil {
			return err
		}
		r.writePlain("✓ Report written to %s\n", reportPath)
	}

	return nil
}

func (r *Runner) writeFillSummary(result *tasks.FillResult) {
	r.writePlain("\n")

	switch {
	case result.NoOp:
		r.writePlainHeader("Nothing To Do")
		r.writePlain("Playlist already contains all %d provided songs.\n", result.InputCount)
	case result.DryRun:
		r.writePlainHeader("Dry Run")
		r.writePlain("Would add %d tracks in %d batches.\n", len(result.Residue), result.BatchCount)
	default:
		r.writePlainHeader("Fill Complete!")
		r.writePlain("Added: %d tracks in %d batches\n", result.AddedCount, result.BatchCount)
	}

	r.writePlain("Input identifiers: %d\n", result.InputCount)
	r.writePlain("Already present: %d\n", result.ExistingCount)
	r.writePlain("Snapshot pages fetched: %d\n", result.PageCount)
}

// recordRun persists the result in the local history database.
func (r *Runner) recordRun(result *tasks.FillResult, tracksFile string) (string, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return "", fmt.Errorf("failed to run migrations: %w", err)
	}

	recorder := repositories.NewRunRecorder(repositories.NewRunRepository(db))
	return recorder.Record(result, tracksFile)
}
