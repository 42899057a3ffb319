// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Server operations
	OpServerConnect Op = "connect to server"
	OpServerPing    Op = "reach server"

	// Library operations
	OpAlbumsLoad  Op = "load albums"
	OpAlbumLoad   Op = "load album"
	OpSearch      Op = "search"
	OpRandomLoad  Op = "load random songs"
	OpStarredLoad Op = "load starred tracks"

	// Playlist operations
	OpPlaylistsLoad    Op = "load playlists"
	OpPlaylistLoad     Op = "load playlist"
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpQueueLoad     Op = "restore queue"
	OpQueueSave     Op = "save queue"

	// Favorites
	OpStarToggle Op = "update starred state"

	// Lyrics
	OpLyricsLoad Op = "load lyrics"

	// Radio
	OpRadioLoad Op = "load similar tracks"

	// Last.fm
	OpLastfmAuth     Op = "authorize Last.fm"
	OpLastfmScrobble Op = "scrobble to Last.fm"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
