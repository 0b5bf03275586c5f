// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/spotfill/internal/services"
)

// MockService is a configurable test double for [services.PlaylistService].
//
// Tracks holds the remote playlist contents served page by page; a nil entry
// models an item without a track reference. Offsets and Appends record the
// calls made against the mock.
type MockService struct {
	Tracks     []*string
	Playlist   *services.Playlist
	PageErr    error
	AppendErr  error
	Offsets    []int
	Appends    [][]string
	AuthCalled bool
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	m.AuthCalled = true
	return nil
}

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string) (*services.Playlist, error) {
	if m.Playlist != nil {
		return m.Playlist, nil
	}
	return &services.Playlist{ID: playlistID, Name: playlistID}, nil
}

func (m *MockService) PlaylistItems(ctx context.Context, playlistID string, offset, limit int) (*services.PlaylistItemsPage, error) {
	m.Offsets = append(m.Offsets, offset)
	if m.PageErr != nil {
		return nil, m.PageErr
	}

	page := &services.PlaylistItemsPage{Total: len(m.Tracks)}
	for i := offset; i < len(m.Tracks) && i < offset+limit; i++ {
		item := services.PlaylistItem{}
		if m.Tracks[i] != nil {
			item.Track = &services.TrackRef{ID: *m.Tracks[i]}
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

func (m *MockService) AddPlaylistItems(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Appends = append(m.Appends, trackIDs)
	return nil
}

func (m *MockService) Name() string { return "mock" }

// TrackID returns a pointer to id for building [MockService.Tracks] entries.
func TrackID(id string) *string { return &id }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
