package player

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for the player.
type Mock struct {
	mu sync.Mutex

	state       State
	position    time.Duration
	duration    time.Duration
	meta        Metadata
	volumeLevel float64
	muted       bool
	loadErr     error
	loadCalls   []string
	seekCalls   []time.Duration
	onTrackEnd  func()
}

// NewMock creates a mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped, volumeLevel: 1.0}
}

func (m *Mock) Load(_ context.Context, streamURL string, knownDuration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadCalls = append(m.loadCalls, streamURL)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.state = Playing
	m.position = 0
	m.duration = knownDuration
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Playing:
		m.state = Paused
	case Paused:
		m.state = Playing
	case Stopped:
		// Nothing to toggle.
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Stopped
	m.position = 0
	m.duration = 0
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Metadata() Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeLevel = level
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volumeLevel
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) OnTrackEnd(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTrackEnd = fn
}

func (m *Mock) Close() error {
	m.Stop()
	return nil
}

// Test helpers

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// SimulateTrackEnd invokes the registered end callback, as the real
// player does when a track plays to completion.
func (m *Mock) SimulateTrackEnd() {
	m.mu.Lock()
	fn := m.onTrackEnd
	m.state = Stopped
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
}
