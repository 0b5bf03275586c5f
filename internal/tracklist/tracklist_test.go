package tracklist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("Skips Blanks And Comments", func(t *testing.T) {
		input := "\n  \n# comment\n   # indented comment\nid1\n"
		ids, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(ids, []string{"id1"}) {
			t.Errorf("expected [id1], got %v", ids)
		}
	})

	t.Run("Reduces URIs To Last Segment", func(t *testing.T) {
		input := "spotify:track:6rqhFgbbKwnb9MLmUQDhG6\nurn:x:y:z:abc\n"
		ids, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"6rqhFgbbKwnb9MLmUQDhG6", "abc"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("expected %v, got %v", want, ids)
		}
	})

	t.Run("Keeps Bare IDs Verbatim", func(t *testing.T) {
		input := "  6rqhFgbbKwnb9MLmUQDhG6  \nplain-id\n"
		ids, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"6rqhFgbbKwnb9MLmUQDhG6", "plain-id"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("expected %v, got %v", want, ids)
		}
	})

	t.Run("Discards Empty Reductions", func(t *testing.T) {
		// A line ending in a colon reduces to the empty string
		input := "spotify:track:\nid2\n"
		ids, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(ids, []string{"id2"}) {
			t.Errorf("expected [id2], got %v", ids)
		}
	})

	t.Run("Preserves Order And Duplicates", func(t *testing.T) {
		input := "id2\nid1\nid2\nspotify:track:id1\n"
		ids, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"id2", "id1", "id2", "id1"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("expected %v, got %v", want, ids)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		ids, err := Parse(strings.NewReader(""))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no ids, got %v", ids)
		}
	})
}

func TestReadFile(t *testing.T) {
	t.Run("Reads Existing File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tracks.txt")
		content := "# my tracks\nid1\nspotify:track:id2\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		ids, err := ReadFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"id1", "id2"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("expected %v, got %v", want, ids)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}
