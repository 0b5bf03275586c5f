// package formatter renders fill results as report files (text, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/spotfill/internal/shared"
	"github.com/desertthunder/spotfill/internal/tasks"
)

// Report is the serializable view of a fill result.
type Report struct {
	PlaylistID    string   `json:"playlist_id"`
	PlaylistName  string   `json:"playlist_name,omitempty"`
	TracksFile    string   `json:"tracks_file,omitempty"`
	InputCount    int      `json:"input_count"`
	ExistingCount int      `json:"existing_count"`
	AddedCount    int      `json:"added_count"`
	BatchCount    int      `json:"batch_count"`
	NoOp          bool     `json:"no_op"`
	DryRun        bool     `json:"dry_run"`
	AddedTracks   []string `json:"added_tracks,omitempty"`
}

// NewReport builds a Report from a fill result. PlaylistName and tracksFile
// are optional context not carried on the result itself.
func NewReport(result *tasks.FillResult, playlistName, tracksFile string) *Report {
	report := &Report{
		PlaylistID:    result.PlaylistID,
		PlaylistName:  playlistName,
		TracksFile:    tracksFile,
		InputCount:    result.InputCount,
		ExistingCount: result.ExistingCount,
		AddedCount:    result.AddedCount,
		BatchCount:    result.BatchCount,
		NoOp:          result.NoOp,
		DryRun:        result.DryRun,
	}

	if result.AddedCount > 0 {
		report.AddedTracks = result.Residue[:result.AddedCount]
	} else if result.DryRun {
		report.AddedTracks = result.Residue
	}

	return report
}

// Text renders the report as plain text.
func (r *Report) Text() []byte {
	var buf bytes.Buffer

	name := r.PlaylistName
	if name == "" {
		name = r.PlaylistID
	}
	buf.WriteString(fmt.Sprintf("Playlist: %s\n", name))
	if r.TracksFile != "" {
		buf.WriteString(fmt.Sprintf("Input file: %s\n", r.TracksFile))
	}
	buf.WriteString(fmt.Sprintf("Input identifiers: %d\n", r.InputCount))
	buf.WriteString(fmt.Sprintf("Already present: %d\n", r.ExistingCount))

	switch {
	case r.NoOp:
		buf.WriteString("Nothing to add; playlist already contains all provided songs.\n")
	case r.DryRun:
		buf.WriteString(fmt.Sprintf("Dry run: %d tracks would be added in %d batches\n", len(r.AddedTracks), r.BatchCount))
	default:
		buf.WriteString(fmt.Sprintf("Added: %d tracks in %d batches\n", r.AddedCount, r.BatchCount))
	}

	if len(r.AddedTracks) > 0 {
		buf.WriteString("\n")
		for i, id := range r.AddedTracks {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, id))
		}
	}

	return buf.Bytes()
}

// CSV renders the appended tracks as CSV with columns: Position, TrackID.
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "TrackID"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, id := range r.AddedTracks {
		if err := writer.Write([]string{strconv.Itoa(i + 1), id}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// JSON renders the full report as JSON.
func (r *Report) JSON(pretty bool) ([]byte, error) {
	return shared.MarshalJSON(r, pretty)
}

// WriteReport writes the report to path in the given format.
//
// Supported formats: txt, csv, json (default).
func WriteReport(report *Report, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "txt":
		data = report.Text()
	case "csv":
		data, err = report.CSV()
	case "json", "":
		data, err = report.JSON(true)
	default:
		return fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidFlag, format)
	}

	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
