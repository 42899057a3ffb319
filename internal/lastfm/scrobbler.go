package lastfm

import (
	"context"
	"time"

	"github.com/llehouerou/crest/internal/playlist"
)

// Submitter feeds playback events into the Last.fm client. It satisfies
// the playback service's scrobbler contract and silently drops
// submissions when no session is configured.
type Submitter struct {
	client *Client
}

func NewSubmitter(client *Client) *Submitter {
	return &Submitter{client: client}
}

func (s *Submitter) NowPlaying(_ context.Context, track playlist.Track) error {
	if !s.client.IsAuthenticated() {
		return nil
	}
	return s.client.UpdateNowPlaying(toScrobbleTrack(track))
}

func (s *Submitter) Scrobble(_ context.Context, track playlist.Track) error {
	if !s.client.IsAuthenticated() {
		return nil
	}
	st := toScrobbleTrack(track)
	// The submission happens past half the track; backdate to the start.
	st.Timestamp = time.Now().Add(-track.Duration / 2)
	return s.client.Scrobble(st)
}

func toScrobbleTrack(track playlist.Track) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:   track.Artist,
		Track:    track.Title,
		Album:    track.Album,
		Duration: track.Duration,
	}
}
