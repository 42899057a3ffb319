package subsonic

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/llehouerou/crest/internal/playlist"
)

// Playlists lists the user's server-side playlists.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	body, err := c.get(ctx, "getPlaylists", nil)
	if err != nil {
		return nil, err
	}
	if body.Playlists == nil {
		return nil, nil
	}
	playlists := make([]Playlist, len(body.Playlists.Playlist))
	for i, p := range body.Playlists.Playlist {
		playlists[i] = Playlist{ID: p.ID, Name: p.Name, SongCount: p.SongCount}
	}
	return playlists, nil
}

// PlaylistTracks returns the tracks of one playlist.
func (c *Client) PlaylistTracks(ctx context.Context, id string) ([]playlist.Track, error) {
	extra := url.Values{}
	extra.Set("id", id)

	body, err := c.get(ctx, "getPlaylist", extra)
	if err != nil {
		return nil, err
	}
	if body.Playlist == nil {
		return nil, fmt.Errorf("getPlaylist: empty playlist payload")
	}
	return toTracks(body.Playlist.Entry), nil
}

// CreatePlaylist creates an empty playlist with the given name.
func (c *Client) CreatePlaylist(ctx context.Context, name string) error {
	extra := url.Values{}
	extra.Set("name", name)
	_, err := c.get(ctx, "createPlaylist", extra)
	return err
}

// DeletePlaylist removes a playlist.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	extra := url.Values{}
	extra.Set("id", id)
	_, err := c.get(ctx, "deletePlaylist", extra)
	return err
}

// ErrDuplicateTrack is returned by AddToPlaylist when the track is
// already present; the playlist is left unchanged.
var ErrDuplicateTrack = fmt.Errorf("track already in playlist")

// AddToPlaylist appends a track to a playlist, refusing duplicates.
func (c *Client) AddToPlaylist(ctx context.Context, playlistID, songID string) error {
	existing, err := c.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return err
	}
	for _, t := range existing {
		if t.ID == songID {
			return ErrDuplicateTrack
		}
	}

	extra := url.Values{}
	extra.Set("playlistId", playlistID)
	extra.Set("songIdToAdd", songID)
	_, err = c.get(ctx, "updatePlaylist", extra)
	return err
}

// RemoveFromPlaylist removes the track at the given position.
func (c *Client) RemoveFromPlaylist(ctx context.Context, playlistID string, index int) error {
	extra := url.Values{}
	extra.Set("playlistId", playlistID)
	extra.Set("songIndexToRemove", strconv.Itoa(index))
	_, err := c.get(ctx, "updatePlaylist", extra)
	return err
}
