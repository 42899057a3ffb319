package lyrics

import "time"

// Tracker reports active-line changes as playback progresses. Each
// Update recomputes the active line from scratch, so backward seeks
// just work; the only retained state is the last reported index, used
// to fire the change signal once per distinct line.
type Tracker struct {
	timeline *Timeline
	lastIdx  int
}

// NewTracker creates a tracker over a timeline.
func NewTracker(timeline *Timeline) *Tracker {
	return &Tracker{timeline: timeline, lastIdx: -1}
}

// Update returns the active line index for pos and whether it differs
// from the previously reported one. Index is -1 when no line is active.
func (t *Tracker) Update(pos time.Duration) (int, bool) {
	idx := t.timeline.LineAt(pos)
	changed := idx != t.lastIdx
	t.lastIdx = idx
	return idx, changed
}

// Reset forgets the last reported line, so the next Update always
// reports a change when a line is active.
func (t *Tracker) Reset() {
	t.lastIdx = -1
}
