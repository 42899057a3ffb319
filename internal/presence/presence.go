// Package presence mirrors the playing track to Discord Rich Presence.
package presence

import (
	"sync"
	"time"
)

// updateDebounce coalesces presence updates. Skipping through a queue
// generates a burst of track changes; the timer resets on each call so
// only the track the user settles on is published.
const updateDebounce = 500 * time.Millisecond

// Info describes what to publish.
type Info struct {
	TrackID  string
	Title    string
	Artist   string
	Album    string
	Position time.Duration
	Duration time.Duration
	Paused   bool
}

// Transport is the IPC connection to the Discord client.
type Transport interface {
	Connect(applicationID string) error
	SetActivity(info Info) error
	Clear() error
	Close()
}

// Updater debounces presence updates to a Transport.
type Updater struct {
	transport Transport
	appID     string
	enabled   bool

	mu        sync.Mutex
	connected bool
	timer     *time.Timer
	pending   *Info
}

// NewUpdater creates an Updater. A disabled updater accepts calls and
// does nothing, so callers never branch on configuration.
func NewUpdater(transport Transport, applicationID string, enabled bool) *Updater {
	return &Updater{
		transport: transport,
		appID:     applicationID,
		enabled:   enabled && applicationID != "",
	}
}

// Update schedules a presence update. The debounce timer resets on
// every call; only the last Info in a burst reaches the transport.
func (u *Updater) Update(info Info) {
	if !u.enabled {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.pending = &info

	if u.timer != nil {
		u.timer.Stop()
	}
	u.timer = time.AfterFunc(updateDebounce, u.flush)
}

func (u *Updater) flush() {
	u.mu.Lock()
	pending := u.pending
	u.pending = nil
	if pending == nil {
		u.mu.Unlock()
		return
	}
	if !u.connected {
		if err := u.transport.Connect(u.appID); err != nil {
			// Discord not running. Drop the update; the next one retries.
			u.mu.Unlock()
			return
		}
		u.connected = true
	}
	u.mu.Unlock()

	_ = u.transport.SetActivity(*pending)
}

// Clear removes the presence immediately and cancels anything pending.
func (u *Updater) Clear() {
	if !u.enabled {
		return
	}

	u.mu.Lock()
	if u.timer != nil {
		u.timer.Stop()
	}
	u.pending = nil
	connected := u.connected
	u.mu.Unlock()

	if connected {
		_ = u.transport.Clear()
	}
}

// Close clears the presence and drops the connection.
func (u *Updater) Close() {
	if !u.enabled {
		return
	}

	u.Clear()

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.connected {
		u.transport.Close()
		u.connected = false
	}
}
