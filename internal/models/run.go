package models

import (
	"fmt"
	"time"
)

// FillRun records one completed fill invocation: the target playlist, the
// input file, and the resulting counts.
type FillRun struct {
	id            string
	sequence      int
	playlistID    string
	tracksFile    string
	inputCount    int
	existingCount int
	addedCount    int
	batchCount    int
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

// NewFillRun creates a FillRun with the given counts. The ID is assigned by
// the repository on Create.
func NewFillRun(sequence int, playlistID, tracksFile string, input, existing, added, batches int) *FillRun {
	now := time.Now()
	return &FillRun{
		sequence:      sequence,
		playlistID:    playlistID,
		tracksFile:    tracksFile,
		inputCount:    input,
		existingCount: existing,
		addedCount:    added,
		batchCount:    batches,
		createdAt:     now,
		updatedAt:     now,
	}
}

func (r *FillRun) ID() string            { return r.id }
func (r *FillRun) Sequence() int         { return r.sequence }
func (r *FillRun) PlaylistID() string    { return r.playlistID }
func (r *FillRun) TracksFile() string    { return r.tracksFile }
func (r *FillRun) InputCount() int       { return r.inputCount }
func (r *FillRun) ExistingCount() int    { return r.existingCount }
func (r *FillRun) AddedCount() int       { return r.addedCount }
func (r *FillRun) BatchCount() int       { return r.batchCount }
func (r *FillRun) CreatedAt() time.Time  { return r.createdAt }
func (r *FillRun) UpdatedAt() time.Time  { return r.updatedAt }
func (r *FillRun) DeletedAt() *time.Time { return r.deletedAt }

func (r *FillRun) SetID(id string)           { r.id = id }
func (r *FillRun) SetSequence(seq int)       { r.sequence = seq }
func (r *FillRun) SetCreatedAt(t time.Time)  { r.createdAt = t }
func (r *FillRun) SetUpdatedAt(t time.Time)  { r.updatedAt = t }
func (r *FillRun) SetDeletedAt(t *time.Time) { r.deletedAt = t }

// Validate checks that the run references a playlist and carries sane counts.
func (r *FillRun) Validate() error {
	if r.playlistID == "" {
		return fmt.Errorf("fill run requires a playlist ID")
	}
	if r.inputCount < 0 || r.existingCount < 0 || r.addedCount < 0 || r.batchCount < 0 {
		return fmt.Errorf("fill run counts must be non-negative")
	}
	if r.addedCount > r.inputCount {
		return fmt.Errorf("added count %d exceeds input count %d", r.addedCount, r.inputCount)
	}
	return nil
}
