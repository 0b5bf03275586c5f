package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spotfill/internal/models"
	"github.com/desertthunder/spotfill/internal/shared"
)

// RunRepository implements [models.Repository] for [models.FillRun] persistence.
//
// Each recorded run keeps its appended track identifiers in append order so
// past syncs can be inspected with the history command.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new [RunRepository] with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new [models.FillRun] into the database with generated ID and sequence
func (r *RunRepository) Create(run *models.FillRun) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	run.SetID(id)
	run.SetSequence(sequence)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO runs (id, sequence, playlist_id, tracks_file, input_count, existing_count, added_count, batch_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		run.PlaylistID(),
		run.TracksFile(),
		run.InputCount(),
		run.ExistingCount(),
		run.AddedCount(),
		run.BatchCount(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// RecordTracks stores the appended track identifiers for a run in append order.
func (r *RunRepository) RecordTracks(runID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO run_tracks (run_id, position, track_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, trackID := range trackIDs {
		if _, err := stmt.Exec(runID, i, trackID); err != nil {
			return fmt.Errorf("failed to insert run track %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run tracks: %w", err)
	}

	return nil
}

// Tracks retrieves the appended track identifiers for a run in append order.
func (r *RunRepository) Tracks(runID string) ([]string, error) {
	rows, err := r.db.Query("SELECT track_id FROM run_tracks WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run tracks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run track: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Get retrieves a run by ID, excluding soft-deleted runs
func (r *RunRepository) Get(id string) (*models.FillRun, error) {
	query := `
		SELECT id, sequence, playlist_id, tracks_file, input_count, existing_count, added_count, batch_count, created_at, updated_at, deleted_at
		FROM runs
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing run in the database
func (r *RunRepository) Update(run *models.FillRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE runs
		SET playlist_id = ?, tracks_file = ?, input_count = ?, existing_count = ?, added_count = ?, batch_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		run.PlaylistID(),
		run.TracksFile(),
		run.InputCount(),
		run.ExistingCount(),
		run.AddedCount(),
		run.BatchCount(),
		now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", run.ID())
	}

	return nil
}

// Delete soft-deletes a run by setting deleted_at
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE runs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}

	return nil
}

// List retrieves runs matching the given criteria, newest first.
//
// Supported criteria: "playlist_id" (string), "limit" (int).
func (r *RunRepository) List(criteria map[string]any) ([]*models.FillRun, error) {
	query := `
		SELECT id, sequence, playlist_id, tracks_file, input_count, existing_count, added_count, batch_count, created_at, updated_at, deleted_at
		FROM runs
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if playlistID, ok := criteria["playlist_id"].(string); ok && playlistID != "" {
		query += " AND playlist_id = ?"
		args = append(args, playlistID)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.FillRun
	for rows.Next() {
		run, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *RunRepository) scanOne(row *sql.Row) (*models.FillRun, error) {
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	return run, err
}

func (r *RunRepository) scanRow(rows *sql.Rows) (*models.FillRun, error) {
	return scanRun(rows)
}

func scanRun(s scannable) (*models.FillRun, error) {
	var (
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
		deletedAt     sql.NullTime
	)

	err := s.Scan(&id, &sequence, &playlistID, &tracksFile, &inputCount, &existingCount, &addedCount, &batchCount, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	run := models.NewFillRun(sequence, playlistID, tracksFile, inputCount, existingCount, addedCount, batchCount)
	run.SetID(id)
	run.SetCreatedAt(createdAt)
	run.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		run.SetDeletedAt(&deletedAt.Time)
	}

	return run, nil
}
