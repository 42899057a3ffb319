// Package playback couples the queue engine to the audio player and
// broadcasts what happened as events. All queue decisions live in
// internal/playlist; this service performs the I/O consequences.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/crest/internal/player"
	"github.com/llehouerou/crest/internal/playlist"
)

// scrobblePollInterval is how often the position is checked against the
// half-duration scrobble threshold.
const scrobblePollInterval = time.Second

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.Mutex

	player     player.Interface
	queue      *playlist.Queue
	streams    StreamSource
	scrobblers []Scrobbler

	// last emitted track, for TrackChange.Previous
	lastTrack *playlist.Track
	lastIndex int

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback service around a player and a queue.
// Scrobblers are optional; each receives now-playing and scrobble
// submissions independently.
func New(p player.Interface, q *playlist.Queue, streams StreamSource, scrobblers ...Scrobbler) Service {
	s := &serviceImpl{
		player:     p,
		queue:      q,
		streams:    streams,
		scrobblers: scrobblers,
		lastIndex:  -1,
		done:       make(chan struct{}),
	}
	p.OnTrackEnd(s.handleTrackEnd)
	go s.scrobbleLoop()
	return s
}

// Play resumes paused playback. With the player stopped but a queue
// position set (a restored session), playback starts there instead.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.State() == player.Stopped && s.queue.Current() == nil {
		if idx := s.queue.CurrentIndex(); idx >= 0 {
			result, err := s.queue.PlayAt(idx)
			if err != nil {
				return err
			}
			return s.applyLocked(result, "play")
		}
	}
	prev := s.stateLocked()
	s.player.Play()
	s.emitStateLocked(prev)
	return nil
}

// Pause pauses playback. The queue engine has no paused state; this is
// player-side only.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.stateLocked()
	s.player.Pause()
	s.emitStateLocked(prev)
	return nil
}

// Toggle toggles between playing and paused. Like Play, it starts a
// restored queue from its saved position.
func (s *serviceImpl) Toggle() error {
	if s.player.State() == player.Stopped {
		return s.Play()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.stateLocked()
	s.player.Toggle()
	s.emitStateLocked(prev)
	return nil
}

// Stop stops the player. The queue keeps its contents and position.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.stateLocked()
	s.player.Stop()
	s.emitStateLocked(prev)
	return nil
}

// Next skips to the next track. A manual skip ignores repeat.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(s.queue.SkipNext(), "next")
}

// Previous goes back one track, or restarts the current one when more
// than the scrub-back window has elapsed.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(s.queue.SkipPrev(s.player.Position()), "previous")
}

// Seek moves the position by delta. Seeking past the end advances as a
// finished track would.
func (s *serviceImpl) Seek(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.player.Position() + delta
	if pos < 0 {
		pos = 0
	}
	if dur := s.player.Duration(); dur > 0 && pos >= dur {
		return s.applyLocked(s.queue.AdvanceOnEnd(), "seek")
	}
	s.player.SeekTo(pos)
	s.emitPosition(pos)
	return nil
}

// SeekTo moves the position to an absolute offset.
func (s *serviceImpl) SeekTo(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 {
		position = 0
	}
	s.player.SeekTo(position)
	s.emitPosition(position)
	return nil
}

// PlayFromList replaces the queue with tracks and starts at start.
func (s *serviceImpl) PlayFromList(tracks []playlist.Track, start int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.queue.PlayFromList(tracks, start)
	if err != nil {
		return err
	}
	s.emitQueueLocked()
	return s.applyLocked(res, "play")
}

// PlayAt starts playback at a queue position.
func (s *serviceImpl) PlayAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.queue.PlayAt(index)
	if err != nil {
		return err
	}
	return s.applyLocked(res, "play")
}

// InsertNext places track right after the current position.
func (s *serviceImpl) InsertNext(track playlist.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.queue.InsertNext(track)
	s.emitQueueLocked()
	return s.applyLocked(res, "play")
}

// Append places track at the end of the queue.
func (s *serviceImpl) Append(track playlist.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.queue.Append(track)
	s.emitQueueLocked()
	return s.applyLocked(res, "play")
}

// RemoveAt removes the track at index. Removing the playing track
// starts the one that slides into its place.
func (s *serviceImpl) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.queue.RemoveAt(index)
	if err != nil {
		return err
	}
	s.emitQueueLocked()
	return s.applyLocked(res, "play")
}

// Move reorders the queue without interrupting playback.
func (s *serviceImpl) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.Move(from, to); err != nil {
		return err
	}
	s.emitQueueLocked()
	return nil
}

// ToggleShuffle flips shuffle and returns the new value.
func (s *serviceImpl) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	on := s.queue.ToggleShuffle()
	s.emitModeLocked()
	s.emitQueueLocked()
	return on
}

// ToggleRepeat flips repeat and returns the new value.
func (s *serviceImpl) ToggleRepeat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	on := s.queue.ToggleRepeat()
	s.emitModeLocked()
	s.emitQueueLocked()
	return on
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	switch s.player.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	return s.player.Duration()
}

// CurrentTrack returns a copy of the playing track, or nil.
func (s *serviceImpl) CurrentTrack() *playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

// QueueTracks returns a copy of the queue in playback order.
func (s *serviceImpl) QueueTracks() []playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

// QueueIndex returns the current queue position (-1 if none).
func (s *serviceImpl) QueueIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

// QueueLen returns the number of queued tracks.
func (s *serviceImpl) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Shuffle returns whether shuffle is enabled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Shuffle()
}

// Repeat returns whether repeat is enabled.
func (s *serviceImpl) Repeat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Repeat()
}

// HistoryTracks returns the listening history, most recent last.
func (s *serviceImpl) HistoryTracks() []playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.History().Tracks()
}

// SetStarred updates the star flag on every queued copy of a track.
func (s *serviceImpl) SetStarred(id string, starred bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.SetStarred(id, starred)
	s.emitQueueLocked()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the service and all subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// handleTrackEnd reacts to the player's end-of-track callback.
func (s *serviceImpl) handleTrackEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	_ = s.applyLocked(s.queue.AdvanceOnEnd(), "advance")
}

// applyLocked performs the I/O consequence of a queue operation and
// emits the matching events. Caller holds s.mu.
func (s *serviceImpl) applyLocked(res playlist.Result, op string) error {
	switch res.Change {
	case playlist.Started:
		return s.startLocked(res, op)
	case playlist.Restarted:
		s.player.SeekTo(0)
		s.emitPosition(0)
		return nil
	case playlist.Stopped:
		prev := s.stateLocked()
		s.player.Stop()
		s.emitTrack(TrackChange{
			Previous:      s.lastTrack,
			PreviousIndex: s.lastIndex,
			Current:       nil,
			Index:         -1,
		})
		s.lastTrack = nil
		s.lastIndex = -1
		s.emitStateLocked(prev)
		return nil
	default:
		return nil
	}
}

func (s *serviceImpl) startLocked(res playlist.Result, op string) error {
	track := *res.Track
	prevState := s.stateLocked()

	err := s.player.Load(context.Background(), s.streams.StreamURL(track.ID), track.Duration)
	if err != nil {
		s.emitError(ErrorEvent{Operation: op, TrackID: track.ID, Err: err})
		return err
	}

	s.emitTrack(TrackChange{
		Previous:      s.lastTrack,
		PreviousIndex: s.lastIndex,
		Current:       &track,
		Index:         res.Index,
	})
	s.lastTrack = &track
	s.lastIndex = res.Index
	s.emitStateLocked(prevState)

	for _, sc := range s.scrobblers {
		go func(sc Scrobbler) {
			_ = sc.NowPlaying(context.Background(), track)
		}(sc)
	}
	return nil
}

// scrobbleLoop polls the position and submits a scrobble once per track
// start, past half the known duration.
func (s *serviceImpl) scrobbleLoop() {
	ticker := time.NewTicker(scrobblePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.maybeScrobble()
		}
	}
}

func (s *serviceImpl) maybeScrobble() {
	s.mu.Lock()
	current := s.queue.Current()
	if current == nil || s.queue.Scrobbled() || s.player.State() != player.Playing {
		s.mu.Unlock()
		return
	}
	dur := s.player.Duration()
	if dur <= 0 || s.player.Position() <= dur/2 {
		s.mu.Unlock()
		return
	}
	s.queue.MarkScrobbled()
	track := *current
	scrobblers := s.scrobblers
	s.mu.Unlock()

	for _, sc := range scrobblers {
		go func(sc Scrobbler) {
			_ = sc.Scrobble(context.Background(), track)
		}(sc)
	}
}

// Event emission. Non-blocking sends; safe while holding s.mu.

func (s *serviceImpl) emitStateLocked(prev State) {
	current := s.stateLocked()
	if current == prev {
		return
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Previous: prev, Current: current})
	}
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *serviceImpl) emitPosition(pos time.Duration) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPosition(pos)
	}
}

func (s *serviceImpl) emitQueueLocked() {
	e := QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendQueue(e)
	}
}

func (s *serviceImpl) emitModeLocked() {
	e := ModeChange{Shuffle: s.queue.Shuffle(), Repeat: s.queue.Repeat()}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendMode(e)
	}
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
