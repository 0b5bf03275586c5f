// package tasks implements the playlist fill workflow.
//
// The core abstraction is FillEngine, which captures a snapshot of the
// remote playlist, computes the ordered residue of local identifiers not yet
// present, and appends the residue in bounded batches. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotfill/internal/services"
	"github.com/desertthunder/spotfill/internal/shared"
	"golang.org/x/time/rate"
)

// SnapshotPageSize is the fixed page size for snapshot requests.
const SnapshotPageSize = 100

// FillOpts contains configuration for a fill run.
type FillOpts struct {
	Dedupe    bool    // Collapse intra-run duplicate identifiers in the residue
	DryRun    bool    // Compute the residue but skip the append calls
	RateLimit float64 // Remote requests per second; <= 0 disables pacing
}

// FillResult contains the outcome of a fill run.
type FillResult struct {
	PlaylistID    string   // Target playlist
	InputCount    int      // Identifiers parsed from the input file
	ExistingCount int      // Distinct identifiers in the pre-run snapshot
	PageCount     int      // Snapshot page requests issued
	Residue       []string // Ordered identifiers not present in the snapshot
	AddedCount    int      // Identifiers actually appended
	BatchCount    int      // Append calls issued
	NoOp          bool     // True when the residue was empty
	DryRun        bool     // True when appends were skipped
}

// FillEngine implements the snapshot/diff/append workflow against a
// [services.PlaylistService].
type FillEngine struct {
	service services.PlaylistService
}

// NewFillEngine creates a new FillEngine backed by the provided service.
func NewFillEngine(service services.PlaylistService) *FillEngine {
	return &FillEngine{service: service}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *FillEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Snapshot fetches the complete set of track identifiers currently in the
// playlist, along with the number of page requests issued.
//
// Pages are requested at a fixed size; the loop terminates when a page
// returns fewer items than requested. The server-reported total is advisory
// and never used for termination. The offset advances by the full page size
// after every request regardless of how many items the page returned, and
// entries without a track reference or identifier are skipped.
func (e *FillEngine) Snapshot(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) (map[string]struct{}, int, error) {
	return e.snapshot(ctx, progress, playlistID, nil)
}

func (e *FillEngine) snapshot(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, limiter *rate.Limiter) (map[string]struct{}, int, error) {
	if e.service == nil {
		return nil, 0, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}

	existing := make(map[string]struct{})
	offset := 0
	pages := 0

	for {
		if err := wait(ctx, limiter); err != nil {
			return nil, pages, err
		}

		page, err := e.service.PlaylistItems(ctx, playlistID, offset, SnapshotPageSize)
		if err != nil {
			return nil, pages, fmt.Errorf("failed to fetch playlist page at offset %d: %w", offset, err)
		}

		for _, item := range page.Items {
			if item.Track == nil || item.Track.ID == "" {
				continue
			}
			existing[item.Track.ID] = struct{}{}
		}

		pages++
		e.sendProgress(progress, snapshotPageUpdate(pages, page.Total, len(existing)))

		offset += SnapshotPageSize
		if len(page.Items) < SnapshotPageSize {
			break
		}
	}

	return existing, pages, nil
}

// Residue returns the identifiers from ids that are not members of existing,
// preserving relative order.
//
// Duplicate occurrences of a non-existing identifier are preserved unless
// dedupe is set, in which case only the first occurrence survives.
func Residue(existing map[string]struct{}, ids []string, dedupe bool) []string {
	residue := make([]string, 0, len(ids))
	seen := make(map[string]struct{})

	for _, id := range ids {
		if _, ok := existing[id]; ok {
			continue
		}
		if dedupe {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
		}
		residue = append(residue, id)
	}

	return residue
}

// Batches partitions ids into consecutive chunks of at most size elements.
func Batches(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}

	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}

	return batches
}

// Fill synchronizes the given identifiers into the playlist.
//
// The snapshot is captured once before any additions and is not refreshed
// mid-run: batches are deduplicated only against the pre-run snapshot, not
// against each other. A failing append aborts the remainder of the run and
// propagates the error; already-appended batches are not rolled back, and
// the next run's snapshot naturally skips them.
func (e *FillEngine) Fill(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, ids []string, opts FillOpts) (*FillResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	result := &FillResult{
		PlaylistID: playlistID,
		InputCount: len(ids),
		DryRun:     opts.DryRun,
	}

	e.sendProgress(progress, snapshotStartUpdate(playlistID))

	existing, pages, err := e.snapshot(ctx, progress, playlistID, limiter)
	if err != nil {
		return nil, err
	}
	result.ExistingCount = len(existing)
	result.PageCount = pages

	e.sendProgress(progress, residueUpdate(len(ids)))
	result.Residue = Residue(existing, ids, opts.Dedupe)

	if len(result.Residue) == 0 {
		result.NoOp = true
		e.sendProgress(progress, noopUpdate())
		return result, nil
	}

	batches := Batches(result.Residue, services.MaxAppendItems)
	result.BatchCount = len(batches)

	if opts.DryRun {
		e.sendProgress(progress, dryRunUpdate(len(result.Residue), len(batches)))
		return result, nil
	}

	for i, batch := range batches {
		if err := wait(ctx, limiter); err != nil {
			return result, err
		}

		if err := e.service.AddPlaylistItems(ctx, playlistID, batch); err != nil {
			return result, fmt.Errorf("failed to append batch %d/%d: %w", i+1, len(batches), err)
		}

		result.AddedCount += len(batch)
		e.sendProgress(progress, batchAppendedUpdate(i+1, len(batches), len(batch)))
	}

	e.sendProgress(progress, fillCompleteUpdate(result.AddedCount, result.BatchCount))
	return result, nil
}

// wait blocks on the limiter when pacing is enabled.
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}
