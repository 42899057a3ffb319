package player

import (
	"os"
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback and releases the decoder and spool file.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Stopped {
		return
	}

	p.generation++
	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	if p.tmpPath != "" {
		os.Remove(p.tmpPath)
		p.tmpPath = ""
	}

	p.ctrl = nil
	p.volume = nil
	p.knownDuration = 0
	p.meta = Metadata{}
	p.state = Stopped
}

// Play resumes paused playback.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Toggle toggles between playing and paused.
func (p *Player) Toggle() {
	p.mu.Lock()
	state := p.state
	p.mu.Unlock()

	switch state {
	case Playing:
		p.Pause()
	case Paused:
		p.Play()
	case Stopped:
		// Nothing to toggle.
	}
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Metadata returns decoder details for the loaded track.
func (p *Player) Metadata() Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.meta
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	// Read without the speaker lock. The value may be a buffer behind
	// but taking speaker.Lock here can deadlock against the mixer.
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration returns the track duration. The decoder's count wins when
// it has one; otherwise the server-reported duration is used.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer != nil {
		if n := p.streamer.Len(); n > 0 {
			return p.format.SampleRate.D(n)
		}
	}
	return p.knownDuration
}

// SeekTo moves playback to an absolute position.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil || p.state == Stopped {
		return
	}

	target := p.format.SampleRate.N(pos)
	target = max(target, 0)
	if n := p.streamer.Len(); n > 0 && target >= n {
		target = n - 1
	}

	speaker.Lock()
	_ = p.streamer.Seek(target)
	speaker.Unlock()
}
