package player

import (
	"context"
	"time"
)

// Metadata describes the decoded stream, available after Load.
type Metadata struct {
	Format     string
	SampleRate int
}

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	// Load fetches the stream and starts playback. knownDuration is the
	// duration reported by the server, used while the decoder cannot
	// compute one itself.
	Load(ctx context.Context, streamURL string, knownDuration time.Duration) error
	Play()
	Pause()
	Toggle()
	Stop()
	SeekTo(pos time.Duration)
	Position() time.Duration
	Duration() time.Duration
	State() State
	Metadata() Metadata
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
	OnTrackEnd(fn func())
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
