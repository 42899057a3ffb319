package playback

import (
	"context"
	"time"

	"github.com/llehouerou/crest/internal/playlist"
)

// StreamSource resolves a track id to a playable stream URL.
type StreamSource interface {
	StreamURL(id string) string
}

// Scrobbler receives play submissions. NowPlaying fires when a track
// starts; Scrobble fires once per track start, past half its duration.
type Scrobbler interface {
	NowPlaying(ctx context.Context, track playlist.Track) error
	Scrobble(ctx context.Context, track playlist.Track) error
}

// Service defines the playback service contract.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Toggle() error
	Stop() error
	Next() error
	Previous() error
	Seek(delta time.Duration) error
	SeekTo(position time.Duration) error

	// Queue control
	PlayFromList(tracks []playlist.Track, start int) error
	PlayAt(index int) error
	InsertNext(track playlist.Track) error
	Append(track playlist.Track) error
	RemoveAt(index int) error
	Move(from, to int) error

	// Mode control
	ToggleShuffle() bool
	ToggleRepeat() bool

	// State queries
	State() State
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *playlist.Track
	QueueTracks() []playlist.Track
	QueueIndex() int
	QueueLen() int
	Shuffle() bool
	Repeat() bool
	HistoryTracks() []playlist.Track

	// Star state, mirrored into queued copies of the track
	SetStarred(id string, starred bool)

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
