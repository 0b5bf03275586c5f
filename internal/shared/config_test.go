package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "spotfill.db" {
			t.Errorf("expected database path spotfill.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Sync.TracksFile != "tracks.txt" {
			t.Errorf("expected tracks file tracks.txt, got %s", config.Sync.TracksFile)
		}
		if config.Credentials.Spotify.RedirectURI != "http://localhost:8080/callback" {
			t.Errorf("expected default redirect URI, got %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Error("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"

[sync]
playlist_id = "pl123"
tracks_file = "my_tracks.txt"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 3000
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("unexpected client_id: %s", config.Credentials.Spotify.ClientID)
		}
		if config.Sync.PlaylistID != "pl123" || config.Sync.TracksFile != "my_tracks.txt" {
			t.Errorf("unexpected sync config: %+v", config.Sync)
		}
		if config.Database.Path != "/custom/path.db" || config.Database.MaxOpenConns != 20 {
			t.Errorf("unexpected database config: %+v", config.Database)
		}
		if config.Server.Host != "0.0.0.0" || config.Server.Port != 3000 {
			t.Errorf("unexpected server config: %+v", config.Server)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("SaveConfig Roundtrip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_id"
		config.Credentials.Spotify.AccessToken = "saved_access"
		config.Sync.PlaylistID = "pl456"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
		if loaded.Credentials.Spotify.ClientID != "saved_id" {
			t.Errorf("unexpected client_id after roundtrip: %s", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Spotify.AccessToken != "saved_access" {
			t.Errorf("unexpected access token after roundtrip: %s", loaded.Credentials.Spotify.AccessToken)
		}
		if loaded.Sync.PlaylistID != "pl456" {
			t.Errorf("unexpected playlist_id after roundtrip: %s", loaded.Sync.PlaylistID)
		}
	})

	t.Run("ApplyEnv Overrides", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_client_id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env_secret")
		t.Setenv("SPOTIFY_PLAYLIST_ID", "env_playlist")
		t.Setenv("TRACKS_FILE", "env_tracks.txt")

		config := DefaultConfig()

		if config.Credentials.Spotify.ClientID != "env_client_id" {
			t.Errorf("expected env client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env_secret" {
			t.Errorf("expected env client_secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
		if config.Sync.PlaylistID != "env_playlist" {
			t.Errorf("expected env playlist_id, got %s", config.Sync.PlaylistID)
		}
		if config.Sync.TracksFile != "env_tracks.txt" {
			t.Errorf("expected env tracks file, got %s", config.Sync.TracksFile)
		}
	})

	t.Run("ApplyEnv Ignores Empty Variables", func(t *testing.T) {
		t.Setenv("SPOTIFY_PLAYLIST_ID", "")

		config := DefaultConfig()
		config.Sync.PlaylistID = "from_file"
		config.ApplyEnv()

		if config.Sync.PlaylistID != "from_file" {
			t.Errorf("expected file value preserved, got %s", config.Sync.PlaylistID)
		}
	})

	t.Run("ValidateSync", func(t *testing.T) {
		t.Run("Complete Config", func(t *testing.T) {
			config := DefaultConfig()
			config.Credentials.Spotify.ClientID = "id"
			config.Credentials.Spotify.ClientSecret = "secret"
			config.Sync.PlaylistID = "pl1"

			if err := config.ValidateSync(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Missing Fields", func(t *testing.T) {
			config := DefaultConfig()
			config.Credentials.Spotify.ClientID = ""
			config.Credentials.Spotify.ClientSecret = ""
			config.Sync.PlaylistID = ""

			err := config.ValidateSync()
			if !errors.Is(err, ErrMissingConfig) {
				t.Fatalf("expected missing config error, got %v", err)
			}
			for _, field := range []string{"client_id", "client_secret", "playlist_id"} {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("expected error to name %s, got %v", field, err)
				}
			}
		})
	})

	t.Run("SpotifyConfig Token", func(t *testing.T) {
		t.Run("Returns Nil Without Access Token", func(t *testing.T) {
			cfg := SpotifyConfig{}
			if cfg.Token() != nil {
				t.Error("expected nil token without access token")
			}
		})

		t.Run("Carries Cached Fields", func(t *testing.T) {
			expiry := time.Now().Add(time.Hour)
			cfg := SpotifyConfig{
				AccessToken:  "access",
				RefreshToken: "refresh",
				TokenExpiry:  expiry,
			}

			token := cfg.Token()
			if token == nil {
				t.Fatal("expected token")
			}
			if token.AccessToken != "access" || token.RefreshToken != "refresh" || !token.Expiry.Equal(expiry) {
				t.Errorf("unexpected token fields: %+v", token)
			}
		})
	})

	t.Run("SpotifyConfig Update", func(t *testing.T) {
		t.Run("Stores Token Fields", func(t *testing.T) {
			cfg := SpotifyConfig{RefreshToken: "old_refresh"}

			token := &oauth2.Token{
				AccessToken: "new_access",
				Expiry:      time.Now().Add(time.Hour),
			}
			if err := cfg.Update(token); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if cfg.AccessToken != "new_access" {
				t.Errorf("expected new access token, got %s", cfg.AccessToken)
			}
			if cfg.RefreshToken != "old_refresh" {
				t.Error("expected refresh token preserved when absent from new token")
			}
		})

		t.Run("Rejects Nil Token", func(t *testing.T) {
			cfg := SpotifyConfig{}
			if err := cfg.Update(nil); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected invalid argument error, got %v", err)
			}
		})
	})
}
