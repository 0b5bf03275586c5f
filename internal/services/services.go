// package services defines interface PlaylistService for interacting with HTTP APIs
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// PlaylistService defines the remote playlist operations the fill engine
// depends on. The concrete implementation is the Spotify Web API client.
type PlaylistService interface {
	// Authenticate performs OAuth or token-based authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylist retrieves playlist metadata by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error)

	// PlaylistItems retrieves one page of playlist entries at the given
	// offset, requesting only track identifiers.
	PlaylistItems(ctx context.Context, playlistID string, offset, limit int) (*PlaylistItemsPage, error)

	// AddPlaylistItems appends the given track IDs to the playlist in a
	// single call. Fails if more than MaxAppendItems IDs are provided.
	AddPlaylistItems(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends PlaylistService with browser-based OAuth2 flow support.
type OAuthService interface {
	PlaylistService

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig returns the underlying OAuth2 config for callback handling.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate authenticates with a previously obtained token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}

// MaxAppendItems is the per-request insertion limit imposed by the remote API.
const MaxAppendItems = 100

// Playlist represents remote playlist metadata.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// PlaylistItemsPage is one page of playlist entries.
//
// Items mirrors the wire shape: an entry's track reference may be nil and
// its ID empty (local or removed tracks), and callers are expected to skip
// those. Total is the server-reported playlist size and is advisory only.
type PlaylistItemsPage struct {
	Items []PlaylistItem
	Total int
}

// PlaylistItem is a single playlist entry.
type PlaylistItem struct {
	Track *TrackRef
}

// TrackRef identifies a track within a playlist entry.
type TrackRef struct {
	ID string
}
