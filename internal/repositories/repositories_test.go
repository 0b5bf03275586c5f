package repositories

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/desertthunder/spotfill/internal/models"
	"github.com/desertthunder/spotfill/internal/shared"
	"github.com/desertthunder/spotfill/internal/tasks"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestRunRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		run := models.NewFillRun(0, "pl123", "tracks.txt", 10, 4, 6, 1)
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
		if run.ID() == "" {
			t.Fatal("expected generated run ID")
		}
		if run.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", run.Sequence())
		}

		got, err := repo.Get(run.ID())
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got.PlaylistID() != "pl123" || got.AddedCount() != 6 || got.BatchCount() != 1 {
			t.Errorf("unexpected run data: %+v", got)
		}
	})

	t.Run("Create Rejects Invalid Run", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		run := models.NewFillRun(0, "", "tracks.txt", 1, 0, 1, 1)
		if err := repo.Create(run); err == nil {
			t.Error("expected validation error for missing playlist ID")
		}
	})

	t.Run("Record And Fetch Tracks", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		run := models.NewFillRun(0, "pl123", "tracks.txt", 3, 0, 3, 1)
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		ids := []string{"id2", "id2", "id1"}
		if err := repo.RecordTracks(run.ID(), ids); err != nil {
			t.Fatalf("failed to record tracks: %v", err)
		}

		got, err := repo.Tracks(run.ID())
		if err != nil {
			t.Fatalf("failed to fetch tracks: %v", err)
		}
		if !reflect.DeepEqual(got, ids) {
			t.Errorf("expected %v, got %v", ids, got)
		}
	})

	t.Run("List Newest First", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		for _, pl := range []string{"pl1", "pl2", "pl1"} {
			run := models.NewFillRun(0, pl, "tracks.txt", 1, 0, 1, 1)
			if err := repo.Create(run); err != nil {
				t.Fatalf("failed to create run: %v", err)
			}
		}

		runs, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].Sequence() != 3 || runs[2].Sequence() != 1 {
			t.Error("expected runs ordered newest first")
		}

		filtered, err := repo.List(map[string]any{"playlist_id": "pl1"})
		if err != nil {
			t.Fatalf("failed to list filtered runs: %v", err)
		}
		if len(filtered) != 2 {
			t.Errorf("expected 2 runs for pl1, got %d", len(filtered))
		}

		limited, err := repo.List(map[string]any{"limit": 1})
		if err != nil {
			t.Fatalf("failed to list limited runs: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("expected 1 run, got %d", len(limited))
		}
	})

	t.Run("Soft Delete", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		run := models.NewFillRun(0, "pl123", "tracks.txt", 1, 0, 1, 1)
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		if err := repo.Delete(run.ID()); err != nil {
			t.Fatalf("failed to delete run: %v", err)
		}
		if _, err := repo.Get(run.ID()); err == nil {
			t.Error("expected error fetching deleted run")
		}
		if err := repo.Delete(run.ID()); err == nil {
			t.Error("expected error deleting run twice")
		}
	})
}

func TestRunRecorder(t *testing.T) {
	t.Run("Records Result And Tracks", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		recorder := NewRunRecorder(repo)

		result := &tasks.FillResult{
			PlaylistID:    "pl123",
			InputCount:    6,
			ExistingCount: 1,
			Residue:       []string{"id2", "id2", "id3"},
			AddedCount:    3,
			BatchCount:    1,
		}

		runID, err := recorder.Record(result, "tracks.txt")
		if err != nil {
			t.Fatalf("failed to record result: %v", err)
		}

		run, err := repo.Get(runID)
		if err != nil {
			t.Fatalf("failed to fetch recorded run: %v", err)
		}
		if run.AddedCount() != 3 {
			t.Errorf("expected added count 3, got %d", run.AddedCount())
		}

		tracks, err := repo.Tracks(runID)
		if err != nil {
			t.Fatalf("failed to fetch recorded tracks: %v", err)
		}
		if !reflect.DeepEqual(tracks, result.Residue) {
			t.Errorf("expected %v, got %v", result.Residue, tracks)
		}
	})

	t.Run("Dry Run Records No Tracks", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		recorder := NewRunRecorder(repo)

		result := &tasks.FillResult{
			PlaylistID: "pl123",
			InputCount: 2,
			Residue:    []string{"id1", "id2"},
			BatchCount: 1,
			DryRun:     true,
		}

		runID, err := recorder.Record(result, "tracks.txt")
		if err != nil {
			t.Fatalf("failed to record result: %v", err)
		}

		tracks, err := repo.Tracks(runID)
		if err != nil {
			t.Fatalf("failed to fetch tracks: %v", err)
		}
		if len(tracks) != 0 {
			t.Errorf("expected no recorded tracks for dry run, got %v", tracks)
		}
	})
}
