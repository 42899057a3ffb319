package playlist

// History is a stack of tracks the user has played through or skipped
// past, pushed at the tail and popped at the tail. It backs the
// previous-track action once the scrub-back window has passed.
type History struct {
	tracks []Track
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Push appends a track unless it is already the most recent entry.
func (h *History) Push(track Track) {
	if n := len(h.tracks); n > 0 && h.tracks[n-1].ID == track.ID {
		return
	}
	h.tracks = append(h.tracks, track)
}

// Pop removes and returns the most recent entry.
// Returns false if the history is empty.
func (h *History) Pop() (Track, bool) {
	n := len(h.tracks)
	if n == 0 {
		return Track{}, false
	}
	track := h.tracks[n-1]
	h.tracks = h.tracks[:n-1]
	return track, true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.tracks)
}

// Tracks returns a copy of all entries, oldest first.
func (h *History) Tracks() []Track {
	return cloneTracks(h.tracks)
}
