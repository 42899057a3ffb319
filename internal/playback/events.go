package playback

import (
	"time"

	"github.com/llehouerou/crest/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a different track.
//
// Emitted by:
//   - PlayFromList/PlayAt: when a track starts
//   - Next/Previous: when navigating actually changes the track
//   - the end-of-track advance
//   - Stop and queue drain: Current is nil
//
// NOT emitted by:
//   - Pause/Toggle: state changes do not emit TrackChange
//   - Previous within the scrub-back window (same track restarts)
//
// The app handles all track side effects (recently-played, lyrics,
// presence, notifications, now-playing submissions) off this event.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}

// ModeChange is emitted when shuffle or repeat flips.
type ModeChange struct {
	Shuffle bool
	Repeat  bool
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g. "play", "advance"
	TrackID   string
	Err       error
}
