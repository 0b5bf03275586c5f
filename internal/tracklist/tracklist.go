// package tracklist parses local track list files into bare track identifiers.
//
// Input is plain UTF-8 text, one identifier or URI per line. Blank lines and
// comment lines are ignored, and namespaced URIs such as
// spotify:track:6rqhFgbbKwnb9MLmUQDhG6 are reduced to their trailing segment.
package tracklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPath is the input file read when no override is configured.
const DefaultPath = "tracks.txt"

// Parse reads identifiers from r, one per line, preserving order and
// duplicates.
//
// A line is skipped when it is empty after trimming or its first
// non-whitespace character is '#'. When a retained line contains a colon,
// only the segment after the last colon is kept; entries that reduce to the
// empty string are discarded. No identifier validation is performed:
// malformed identifiers pass through and surface as remote API errors.
func Parse(r io.Reader) ([]string, error) {
	var ids []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id := line
		if idx := strings.LastIndex(line, ":"); idx >= 0 {
			id = line[idx+1:]
		}

		if id != "" {
			ids = append(ids, id)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read track list: %w", err)
	}

	return ids, nil
}

// ReadFile opens the file at path and parses it with [Parse].
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track list: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
