package app

import (
	"time"

	"github.com/llehouerou/crest/internal/lyrics"
	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/playlist"
	"github.com/llehouerou/crest/internal/state"
	"github.com/llehouerou/crest/internal/subsonic"
)

// Screen load results

type albumsLoadedMsg struct {
	albums []subsonic.Album
}

type albumLoadedMsg struct {
	album *subsonic.AlbumTracks
}

type playlistsLoadedMsg struct {
	playlists []subsonic.Playlist
}

type playlistLoadedMsg struct {
	id     string
	tracks []playlist.Track
}

type tracksLoadedMsg struct {
	title  string
	tracks []playlist.Track
}

type recentLoadedMsg struct {
	entries []state.PlayedTrack
}

type searchLoadedMsg struct {
	query  string
	result *subsonic.SearchResult
}

type lyricsFetchedMsg struct {
	result lyrics.Result
}

type starToggledMsg struct {
	trackID string
	starred bool
}

type radioTracksMsg struct {
	tracks []playlist.Track
}

// Playback events, pumped from the service subscription

type trackChangedMsg playback.TrackChange
type stateChangedMsg playback.StateChange
type queueChangedMsg playback.QueueChange
type modeChangedMsg playback.ModeChange
type playbackErrorMsg playback.ErrorEvent
type subscriptionClosedMsg struct{}

// errorMsg carries a user-facing failure description.
type errorMsg struct {
	text string
}

// tickMsg drives position-dependent UI (progress bar, lyrics).
type tickMsg time.Time
