package subsonic

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/llehouerou/crest/internal/playlist"
)

// Albums returns the newest albums in the library, sorted by name.
func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	extra := url.Values{}
	extra.Set("type", "newest")
	extra.Set("size", "200")

	body, err := c.get(ctx, "getAlbumList2", extra)
	if err != nil {
		return nil, err
	}
	if body.AlbumList2 == nil {
		return nil, nil
	}
	albums := make([]Album, len(body.AlbumList2.Album))
	for i, a := range body.AlbumList2.Album {
		albums[i] = a.toAlbum()
	}
	sort.Slice(albums, func(i, j int) bool {
		return albums[i].Name < albums[j].Name
	})
	return albums, nil
}

// Album returns one album with its track list. Tracks missing their
// album name or ID inherit them from the album record.
func (c *Client) Album(ctx context.Context, id string) (*AlbumTracks, error) {
	extra := url.Values{}
	extra.Set("id", id)

	body, err := c.get(ctx, "getAlbum", extra)
	if err != nil {
		return nil, err
	}
	if body.Album == nil {
		return nil, fmt.Errorf("getAlbum: empty album payload")
	}

	result := &AlbumTracks{Album: body.Album.toAlbum()}
	for _, s := range body.Album.Song {
		track := s.toTrack()
		if track.Album == "" {
			track.Album = result.Name
		}
		if track.CoverArt == "" {
			track.CoverArt = result.CoverArt
		}
		result.Tracks = append(result.Tracks, track)
	}
	return result, nil
}

// Search runs a search3 query across artists, albums, and songs.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	extra := url.Values{}
	extra.Set("query", query)
	extra.Set("artistCount", "5")
	extra.Set("albumCount", "20")
	extra.Set("songCount", "20")

	body, err := c.get(ctx, "search3", extra)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{}
	if body.SearchResult3 == nil {
		return result, nil
	}
	for _, a := range body.SearchResult3.Artist {
		result.Artists = append(result.Artists, Artist{ID: a.ID, Name: a.Name, CoverArt: a.CoverArt})
	}
	for _, a := range body.SearchResult3.Album {
		result.Albums = append(result.Albums, a.toAlbum())
	}
	result.Songs = toTracks(body.SearchResult3.Song)
	return result, nil
}

// RandomSongs returns up to count random tracks for a quick mix.
func (c *Client) RandomSongs(ctx context.Context, count int) ([]playlist.Track, error) {
	extra := url.Values{}
	extra.Set("size", strconv.Itoa(count))

	body, err := c.get(ctx, "getRandomSongs", extra)
	if err != nil {
		return nil, err
	}
	if body.RandomSongs == nil {
		return nil, nil
	}
	return toTracks(body.RandomSongs.Song), nil
}

// Starred returns the user's favourite tracks.
func (c *Client) Starred(ctx context.Context) ([]playlist.Track, error) {
	body, err := c.get(ctx, "getStarred", nil)
	if err != nil {
		return nil, err
	}
	if body.Starred == nil {
		return nil, nil
	}
	return toTracks(body.Starred.Song), nil
}

// SimilarSongs returns tracks similar to the given album or song ID.
func (c *Client) SimilarSongs(ctx context.Context, id string, count int) ([]playlist.Track, error) {
	extra := url.Values{}
	extra.Set("id", id)
	extra.Set("count", strconv.Itoa(count))

	body, err := c.get(ctx, "getSimilarSongs2", extra)
	if err != nil {
		return nil, err
	}
	if body.SimilarSongs2 == nil {
		return nil, nil
	}
	return toTracks(body.SimilarSongs2.Song), nil
}
