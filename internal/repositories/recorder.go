package repositories

import (
	"fmt"

	"github.com/desertthunder/spotfill/internal/models"
	"github.com/desertthunder/spotfill/internal/tasks"
)

// RunRecorder persists completed fill results using a RunRepository.
//
// Recording is opt-in and failures here should not abort a fill that has
// already modified the remote playlist; callers log and continue.
type RunRecorder struct {
	repo *RunRepository
}

// NewRunRecorder creates a new RunRecorder with the given repository
func NewRunRecorder(repo *RunRepository) *RunRecorder {
	return &RunRecorder{repo: repo}
}

// Record stores a fill result and its appended track identifiers.
// Returns the generated run ID.
func (a *RunRecorder) Record(result *tasks.FillResult, tracksFile string) (string, error) {
	run := models.NewFillRun(0, result.PlaylistID, tracksFile,
		result.InputCount, result.ExistingCount, result.AddedCount, result.BatchCount)

	if err := a.repo.Create(run); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	// Dry runs append nothing; record the run row only.
	appended := result.Residue[:result.AddedCount]
	if err := a.repo.RecordTracks(run.ID(), appended); err != nil {
		return run.ID(), fmt.Errorf("failed to record run tracks: %w", err)
	}

	return run.ID(), nil
}
