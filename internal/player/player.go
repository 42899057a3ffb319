// Package player is the audio output primitive: it fetches a stream
// URL, decodes it, and plays it through the system speaker.
package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

type Player struct {
	mu sync.Mutex

	httpClient *http.Client

	state    State
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	format   beep.Format
	meta     Metadata

	file    *os.File
	tmpPath string

	knownDuration time.Duration

	volumeLevel float64
	muted       bool

	// generation guards against the end callback of a replaced track
	// firing after Load or Stop swapped the streamer out.
	generation int

	onTrackEnd func()
}

func New() *Player {
	return &Player{
		httpClient:  &http.Client{Timeout: 0},
		state:       Stopped,
		volumeLevel: 1.0,
	}
}

// OnTrackEnd registers the callback invoked when the current track
// plays to completion. Not invoked on Stop or on Load of a new track.
func (p *Player) OnTrackEnd(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onTrackEnd = fn
}

// Load fetches streamURL, decodes it, and starts playback.
func (p *Player) Load(ctx context.Context, streamURL string, knownDuration time.Duration) error {
	p.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream request failed: %s", resp.Status)
	}

	// Spool to a temp file so the decoder can seek.
	f, err := os.CreateTemp("", "crest-stream-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	streamer, format, name, err := decode(f, resp.Header.Get("Content-Type"))
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			os.Remove(f.Name())
			return err
		}
		speakerInitialized = true
	}

	p.file = f
	p.tmpPath = f.Name()
	p.streamer = streamer
	p.format = format
	p.knownDuration = knownDuration
	p.meta = Metadata{Format: name, SampleRate: int(format.SampleRate)}

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: false}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Silent: p.muted}
	if !p.muted {
		p.volume.Volume = levelToVolume(p.volumeLevel)
	}

	p.generation++
	gen := p.generation
	p.state = Playing

	// The callback runs on the speaker's mixing goroutine with the
	// speaker lock held; hand off so the handler can touch the speaker.
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.trackEnded(gen)
	})))

	return nil
}

func (p *Player) trackEnded(gen int) {
	p.mu.Lock()
	if gen != p.generation || p.state == Stopped {
		p.mu.Unlock()
		return
	}
	fn := p.onTrackEnd
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Close stops playback and releases resources.
func (p *Player) Close() error {
	p.Stop()
	return nil
}

// decode picks a decoder from the response content type. Subsonic
// transcodes to MP3 when a bitrate cap is set, so MP3 is the default.
func decode(f *os.File, contentType string) (beep.StreamSeekCloser, beep.Format, string, error) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "flac"):
		streamer, format, err := flac.Decode(f)
		return streamer, format, "FLAC", err
	default:
		streamer, format, err := decodeMP3(f)
		return streamer, format, "MP3", err
	}
}
