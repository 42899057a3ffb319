// Package playlist implements the playback queue: ordering, shuffle,
// repeat, and the listening history used for previous-track navigation.
package playlist

import "time"

// Track represents a single track as served by the remote library.
type Track struct {
	ID       string // server track ID, unique within a queue
	Title    string
	Artist   string
	Album    string
	Duration time.Duration // zero if the server did not report one
	CoverArt string        // opaque cover art reference
	Suffix   string        // container hint from the server ("mp3", "flac", ...)
	Starred  bool
}

// cloneTracks returns an independent copy of tracks.
func cloneTracks(tracks []Track) []Track {
	result := make([]Track, len(tracks))
	copy(result, tracks)
	return result
}

// indexByID returns the index of the track with the given ID, or -1.
func indexByID(tracks []Track, id string) int {
	for i := range tracks {
		if tracks[i].ID == id {
			return i
		}
	}
	return -1
}
