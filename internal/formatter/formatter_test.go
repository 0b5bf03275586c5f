package formatter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/spotfill/internal/tasks"
)

func sampleResult() *tasks.FillResult {
	return &tasks.FillResult{
		PlaylistID:    "pl123",
		InputCount:    6,
		ExistingCount: 3,
		Residue:       []string{"id2", "id2", "id3"},
		AddedCount:    3,
		BatchCount:    1,
	}
}

func TestNewReport(t *testing.T) {
	t.Run("Carries Appended Tracks", func(t *testing.T) {
		report := NewReport(sampleResult(), "Road Trip", "tracks.txt")

		if report.PlaylistName != "Road Trip" {
			t.Errorf("expected playlist name Road Trip, got %s", report.PlaylistName)
		}
		if len(report.AddedTracks) != 3 {
			t.Errorf("expected 3 added tracks, got %d", len(report.AddedTracks))
		}
	})

	t.Run("Dry Run Carries Residue", func(t *testing.T) {
		result := sampleResult()
		result.AddedCount = 0
		result.BatchCount = 0
		result.DryRun = true

		report := NewReport(result, "", "tracks.txt")
		if len(report.AddedTracks) != 3 {
			t.Errorf("expected residue carried for dry run, got %d tracks", len(report.AddedTracks))
		}
	})

	t.Run("NoOp Carries No Tracks", func(t *testing.T) {
		result := sampleResult()
		result.Residue = nil
		result.AddedCount = 0
		result.BatchCount = 0
		result.NoOp = true

		report := NewReport(result, "", "")
		if len(report.AddedTracks) != 0 {
			t.Errorf("expected no tracks for no-op, got %v", report.AddedTracks)
		}
	})
}

func TestReportRendering(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		report := NewReport(sampleResult(), "Road Trip", "tracks.txt")
		text := string(report.Text())

		for _, want := range []string{"Playlist: Road Trip", "Input identifiers: 6", "Already present: 3", "Added: 3 tracks in 1 batches", "1. id2"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected text report to contain %q:\n%s", want, text)
			}
		}
	})

	t.Run("Text NoOp", func(t *testing.T) {
		result := sampleResult()
		result.Residue = nil
		result.AddedCount = 0
		result.NoOp = true

		text := string(NewReport(result, "", "").Text())
		if !strings.Contains(text, "Nothing to add") {
			t.Errorf("expected no-op message, got:\n%s", text)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		report := NewReport(sampleResult(), "", "")

		data, err := report.CSV()
		if err != nil {
			t.Fatalf("failed to render CSV: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected header plus 3 records, got %d rows", len(records))
		}
		if records[0][0] != "Position" || records[0][1] != "TrackID" {
			t.Errorf("unexpected headers: %v", records[0])
		}
		if records[1][1] != "id2" || records[3][1] != "id3" {
			t.Errorf("expected tracks in append order, got %v", records[1:])
		}
	})

	t.Run("JSON", func(t *testing.T) {
		report := NewReport(sampleResult(), "Road Trip", "tracks.txt")

		data, err := report.JSON(false)
		if err != nil {
			t.Fatalf("failed to render JSON: %v", err)
		}

		var got Report
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}
		if got.PlaylistID != "pl123" || got.AddedCount != 3 {
			t.Errorf("unexpected report data: %+v", got)
		}
	})
}

func TestWriteReport(t *testing.T) {
	report := NewReport(sampleResult(), "", "tracks.txt")

	t.Run("Writes JSON By Default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		if err := WriteReport(report, "", path); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var got Report
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("expected valid JSON report: %v", err)
		}
	})

	t.Run("Writes Text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		if err := WriteReport(report, "txt", path); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "Input identifiers: 6") {
			t.Errorf("unexpected text report:\n%s", data)
		}
	})

	t.Run("Rejects Unknown Format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xml")
		if err := WriteReport(report, "xml", path); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
