package subsonic

import (
	"context"

	"github.com/llehouerou/crest/internal/playlist"
)

// ScrobbleReporter reports plays back to the server so its own
// play counts and now-playing endpoints stay current.
type ScrobbleReporter struct {
	client *Client
}

func NewScrobbleReporter(c *Client) *ScrobbleReporter {
	return &ScrobbleReporter{client: c}
}

func (r *ScrobbleReporter) NowPlaying(ctx context.Context, track playlist.Track) error {
	return r.client.NowPlaying(ctx, track.ID)
}

func (r *ScrobbleReporter) Scrobble(ctx context.Context, track playlist.Track) error {
	return r.client.Scrobble(ctx, track.ID)
}
