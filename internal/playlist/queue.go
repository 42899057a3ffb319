package playlist

import (
	"errors"
	"math/rand/v2"
	"time"
)

// scrubBackWindow is how far into a track the previous-track action still
// goes back to the prior track instead of restarting the current one.
const scrubBackWindow = 3 * time.Second

// ErrInvalidIndex is returned when an operation references a queue
// position that does not exist. The queue is left unchanged.
var ErrInvalidIndex = errors.New("queue index out of range")

// Change describes what an operation did to playback.
type Change int

const (
	// NoChange means playback continues unaffected.
	NoChange Change = iota
	// Started means Track at Index was (re)started and should be loaded.
	Started
	// Restarted means the current track should seek back to zero.
	Restarted
	// Stopped means the queue drained and playback should stop.
	Stopped
)

// Result reports the playback consequence of a queue operation.
// The engine performs no I/O itself: the host reacts to Started by
// loading the track's stream, to Restarted by seeking to zero, and to
// Stopped by tearing down the player.
type Result struct {
	Change Change
	Track  *Track
	Index  int
}

var noChange = Result{Change: NoChange, Index: -1}

// Queue owns the playback order, the pre-shuffle origin order, the
// current position, and the listening history. All methods are
// synchronous and mutate no state on error.
type Queue struct {
	tracks  []Track
	origin  []Track
	current int // -1 when nothing is playing
	playing *Track
	history *History

	shuffle   bool
	repeat    bool
	scrobbled bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		current: -1,
		history: NewHistory(),
	}
}

// PlayFromList replaces the queue with a copy of list and starts playback.
// With shuffle off, playback starts at start in list order. With shuffle
// on, the track at start is pinned to position 0, the remainder is
// shuffled, and playback starts at 0. The origin order always keeps the
// unshuffled list as the restore point.
func (q *Queue) PlayFromList(list []Track, start int) (Result, error) {
	if start < 0 || start >= len(list) {
		return noChange, ErrInvalidIndex
	}
	q.tracks = cloneTracks(list)
	q.origin = cloneTracks(list)
	if !q.shuffle {
		return q.playAt(start), nil
	}
	first := q.tracks[start]
	rest := make([]Track, 0, len(q.tracks)-1)
	rest = append(rest, q.tracks[:start]...)
	rest = append(rest, q.tracks[start+1:]...)
	shuffleTracks(rest)
	q.tracks = append([]Track{first}, rest...)
	return q.playAt(0), nil
}

// Restore loads a saved queue snapshot without starting playback. The
// saved order is taken as both the play and origin order, so a snapshot
// taken while shuffled stays in its shuffled order.
func (q *Queue) Restore(tracks []Track, index int, shuffle, repeat bool) {
	q.tracks = cloneTracks(tracks)
	q.origin = cloneTracks(tracks)
	q.shuffle = shuffle
	q.repeat = repeat
	q.playing = nil
	q.scrobbled = false
	q.current = -1
	if index >= 0 && index < len(q.tracks) {
		q.current = index
	}
}

// PlayAt starts playback of the track at index without touching the
// queue contents.
func (q *Queue) PlayAt(index int) (Result, error) {
	if index < 0 || index >= len(q.tracks) {
		return noChange, ErrInvalidIndex
	}
	return q.playAt(index), nil
}

// playAt sets the current position and reports the track to start.
// Resets the per-track scrobble latch.
func (q *Queue) playAt(index int) Result {
	q.current = index
	track := q.tracks[index]
	q.playing = &track
	q.scrobbled = false
	return Result{Change: Started, Track: &track, Index: index}
}

// InsertNext places track immediately after the current position. On an
// empty queue it behaves like PlayFromList([track], 0). While shuffled
// the track is also appended to the origin order so that disabling
// shuffle later does not lose it.
func (q *Queue) InsertNext(track Track) Result {
	if len(q.tracks) == 0 {
		result, _ := q.PlayFromList([]Track{track}, 0)
		return result
	}
	at := q.current + 1
	q.tracks = append(q.tracks[:at], append([]Track{track}, q.tracks[at:]...)...)
	if q.shuffle {
		q.origin = append(q.origin, track)
	}
	return noChange
}

// Append places track at the tail of the queue. Empty-queue and shuffle
// handling match InsertNext.
func (q *Queue) Append(track Track) Result {
	if len(q.tracks) == 0 {
		result, _ := q.PlayFromList([]Track{track}, 0)
		return result
	}
	q.tracks = append(q.tracks, track)
	if q.shuffle {
		q.origin = append(q.origin, track)
	}
	return noChange
}

// RemoveAt removes the track at index. Removing a track before the
// current one shifts the current position left; removing the current
// track starts whatever lands in its place, or stops playback when the
// queue empties.
func (q *Queue) RemoveAt(index int) (Result, error) {
	if index < 0 || index >= len(q.tracks) {
		return noChange, ErrInvalidIndex
	}
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	switch {
	case index < q.current:
		q.current--
		return noChange, nil
	case index == q.current:
		if len(q.tracks) > 0 {
			return q.playAt(q.current % len(q.tracks)), nil
		}
		return q.stop(), nil
	default:
		return noChange, nil
	}
}

// Move moves the track at from to position to. The current position
// keeps referring to the same track unless the moved track was the
// current one, in which case it follows the move.
func (q *Queue) Move(from, to int) error {
	if from < 0 || from >= len(q.tracks) || to < 0 || to >= len(q.tracks) {
		return ErrInvalidIndex
	}
	if from == to {
		return nil
	}
	track := q.tracks[from]
	q.tracks = append(q.tracks[:from], q.tracks[from+1:]...)
	q.tracks = append(q.tracks[:to], append([]Track{track}, q.tracks[to:]...)...)

	switch {
	case q.current == from:
		q.current = to
	case from < q.current && to >= q.current:
		q.current--
	case from > q.current && to <= q.current:
		q.current++
	}
	return nil
}

// AdvanceOnEnd reacts to the current track finishing. With repeat on,
// the current track replays in place. Otherwise the finished track is
// pushed onto the history, removed from the queue, and the next track
// starts; an emptied queue stops playback.
func (q *Queue) AdvanceOnEnd() Result {
	if q.repeat && q.playing != nil {
		return q.playAt(q.current)
	}
	return q.advance()
}

// SkipNext advances exactly like a finished track, but always: a manual
// skip ignores repeat.
func (q *Queue) SkipNext() Result {
	if len(q.tracks) == 0 {
		return noChange
	}
	return q.advance()
}

func (q *Queue) advance() Result {
	if len(q.tracks) == 0 || q.current < 0 {
		return q.stop()
	}
	if q.playing != nil {
		q.history.Push(*q.playing)
		q.playing = nil
	}
	q.tracks = append(q.tracks[:q.current], q.tracks[q.current+1:]...)
	if len(q.tracks) > 0 {
		return q.playAt(q.current % len(q.tracks))
	}
	return q.stop()
}

// SkipPrev goes back one track. Past the scrub-back window it only
// restarts the current track. Within the window it pops the most recent
// history entry, puts the current track back at the head of the queue,
// places the popped track in front of it, and plays from position 0.
// With no history the current track restarts.
func (q *Queue) SkipPrev(elapsed time.Duration) Result {
	if elapsed > scrubBackWindow {
		return q.restart()
	}
	prev, ok := q.history.Pop()
	if !ok {
		return q.restart()
	}
	if q.playing != nil {
		if len(q.tracks) == 0 || q.tracks[0].ID != q.playing.ID {
			q.tracks = append([]Track{*q.playing}, q.tracks...)
		}
	}
	if len(q.tracks) == 0 || q.tracks[0].ID != prev.ID {
		q.tracks = append([]Track{prev}, q.tracks...)
	}
	return q.playAt(0)
}

func (q *Queue) restart() Result {
	if q.playing == nil {
		return noChange
	}
	return Result{Change: Restarted, Track: q.playing, Index: q.current}
}

// ToggleShuffle flips shuffle mode and returns the new value.
//
// Turning shuffle on cancels repeat, pins the current track to position
// 0, and shuffles the rest of the origin order behind it. Turning it
// off restores the origin order and relocates the current position to
// the playing track, falling back to 0 if that track was removed while
// shuffled.
func (q *Queue) ToggleShuffle() bool {
	q.shuffle = !q.shuffle
	if q.shuffle {
		q.repeat = false
		q.reshuffle()
	} else {
		q.restoreOrigin()
	}
	return q.shuffle
}

func (q *Queue) reshuffle() {
	if len(q.tracks) == 0 || q.current < 0 {
		return
	}
	cur := q.tracks[q.current]
	rest := make([]Track, 0, len(q.origin))
	for _, t := range q.origin {
		if t.ID != cur.ID {
			rest = append(rest, t)
		}
	}
	shuffleTracks(rest)
	q.tracks = append([]Track{cur}, rest...)
	q.current = 0
}

func (q *Queue) restoreOrigin() {
	if len(q.origin) == 0 || len(q.tracks) == 0 || q.current < 0 {
		return
	}
	cur := q.tracks[q.current]
	q.tracks = cloneTracks(q.origin)
	if idx := indexByID(q.tracks, cur.ID); idx >= 0 {
		q.current = idx
	} else {
		q.current = 0
	}
}

// ToggleRepeat flips repeat mode and returns the new value. Repeat and
// shuffle are mutually exclusive: turning repeat on disables shuffle and
// restores the origin order, the same restoration ToggleShuffle performs.
func (q *Queue) ToggleRepeat() bool {
	q.repeat = !q.repeat
	if q.repeat && q.shuffle {
		q.shuffle = false
		q.restoreOrigin()
	}
	return q.repeat
}

// stop clears playback state. Queue contents are already empty when this
// is reached; history is kept, it records listening, not queue membership.
func (q *Queue) stop() Result {
	q.playing = nil
	q.current = -1
	return Result{Change: Stopped, Index: -1}
}

// Current returns a copy of the currently playing track, or nil.
func (q *Queue) Current() *Track {
	if q.playing == nil {
		return nil
	}
	track := *q.playing
	return &track
}

// CurrentIndex returns the current queue position (-1 if none).
func (q *Queue) CurrentIndex() int {
	return q.current
}

// Tracks returns a copy of the queue in playback order.
func (q *Queue) Tracks() []Track {
	return cloneTracks(q.tracks)
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if no tracks are queued.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// History exposes the listening history.
func (q *Queue) History() *History {
	return q.history
}

// Shuffle reports whether shuffle mode is on.
func (q *Queue) Shuffle() bool {
	return q.shuffle
}

// Repeat reports whether repeat mode is on.
func (q *Queue) Repeat() bool {
	return q.repeat
}

// Scrobbled reports whether the current track has been scrobbled.
func (q *Queue) Scrobbled() bool {
	return q.scrobbled
}

// MarkScrobbled latches the scrobble flag for the current track.
// Cleared whenever a track starts.
func (q *Queue) MarkScrobbled() {
	q.scrobbled = true
}

// SetStarred annotates the currently playing track and its queue entries.
func (q *Queue) SetStarred(id string, starred bool) {
	if q.playing != nil && q.playing.ID == id {
		q.playing.Starred = starred
	}
	for i := range q.tracks {
		if q.tracks[i].ID == id {
			q.tracks[i].Starred = starred
		}
	}
	for i := range q.origin {
		if q.origin[i].ID == id {
			q.origin[i].Starred = starred
		}
	}
}

// shuffleTracks permutes tracks uniformly. Reproducibility is not a
// goal; the global generator is fine.
func shuffleTracks(tracks []Track) {
	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}
