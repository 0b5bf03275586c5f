package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/desertthunder/spotfill/internal/shared"
	"github.com/desertthunder/spotfill/internal/tracklist"
	"github.com/urfave/cli/v3"
)

// Tracks parses the local identifier file and prints the normalized identifiers.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	tracksFile := r.config.Sync.TracksFile
	if f := cmd.String("file"); f != "" {
		tracksFile = f
	}
	if tracksFile == "" {
		tracksFile = tracklist.DefaultPath
	}

	ids, err := tracklist.ReadFile(tracksFile)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Infof("parsed %d identifiers from %v", len(ids), tracksFile)

	if cmd.Bool("json") {
		return r.writeJSON(ids, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d identifiers in %s:\n\n", len(ids), tracksFile)
	for i, id := range ids {
		r.writePlain("%d. %s\n", i+1, id)
	}

	return nil
}

// PlaylistShow prints metadata for the target playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	playlistID := r.config.Sync.PlaylistID
	if p := cmd.String("playlist"); p != "" {
		playlistID = p
	}
	if playlistID == "" {
		return fmt.Errorf("%w: playlist_id", shared.ErrMissingConfig)
	}

	if err := r.ensureAuthenticated(ctx, cmd); err != nil {
		return err
	}

	playlist, err := r.spotify.GetPlaylist(ctx, playlistID)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if playlist, err = r.spotify.GetPlaylist(ctx, playlistID); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, cmd.Bool("pretty"))
	}

	r.writePlain("Playlist: %s\n", playlist.Name)
	if playlist.Description != "" {
		r.writePlain("Description: %s\n", playlist.Description)
	}
	r.writePlain("ID: %s\n", playlist.ID)
	r.writePlain("Tracks: %d\n", playlist.TrackCount)
	if playlist.Public {
		r.writePlain("Visibility: Public\n")
	} else {
		r.writePlain("Visibility: Private\n")
	}

	return nil
}

// PlaylistSnapshot fetches and prints the full identifier set of the playlist.
func (r *Runner) PlaylistSnapshot(ctx context.Context, cmd *cli.Command) error {
	playlistID := r.config.Sync.PlaylistID
	if p := cmd.String("playlist"); p != "" {
		playlistID = p
	}
	if playlistID == "" {
		return fmt.Errorf("%w: playlist_id", shared.ErrMissingConfig)
	}

	if err := r.ensureAuthenticated(ctx, cmd); err != nil {
		return err
	}

	existing, pages, err := r.engine.Snapshot(ctx, nil, playlistID)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if existing, pages, err = r.engine.Snapshot(ctx, nil, playlistID); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	ids := make([]string, 0, len(existing))
	for id := range existing {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if cmd.Bool("json") {
		return r.writeJSON(ids, true)
	}

	r.writePlain("Playlist %s contains %d distinct tracks (%d pages fetched):\n\n", playlistID, len(ids), pages)
	for i, id := range ids {
		r.writePlain("%d. %s\n", i+1, id)
	}

	return nil
}
