package subsonic

import (
	"time"

	"github.com/llehouerou/crest/internal/playlist"
)

// envelope is the outer wrapper every Subsonic JSON response carries.
type envelope struct {
	Response *responseBody `json:"subsonic-response"`
}

// responseBody holds every payload variant; only the field matching the
// requested endpoint is populated. Absent arrays stay nil and are
// tolerated everywhere.
type responseBody struct {
	Status string `json:"status"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`

	AlbumList2 *struct {
		Album []albumEntry `json:"album"`
	} `json:"albumList2"`
	Album     *albumWithSongs `json:"album"`
	Playlists *struct {
		Playlist []playlistEntry `json:"playlist"`
	} `json:"playlists"`
	Playlist *struct {
		playlistEntry
		Entry []songEntry `json:"entry"`
	} `json:"playlist"`
	SearchResult3 *struct {
		Artist []artistEntry `json:"artist"`
		Album  []albumEntry  `json:"album"`
		Song   []songEntry   `json:"song"`
	} `json:"searchResult3"`
	RandomSongs *struct {
		Song []songEntry `json:"song"`
	} `json:"randomSongs"`
	Starred *struct {
		Song []songEntry `json:"song"`
	} `json:"starred"`
	SimilarSongs2 *struct {
		Song []songEntry `json:"song"`
	} `json:"similarSongs2"`
}

// songEntry is a track as the server describes it.
type songEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	AlbumID  string `json:"albumId"`
	Duration int    `json:"duration"` // seconds; 0 when unknown
	CoverArt string `json:"coverArt"`
	Suffix   string `json:"suffix"`
	Starred  string `json:"starred"` // timestamp when starred, absent otherwise
}

type albumEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	CoverArt string `json:"coverArt"`
	Year     int    `json:"year"`
}

type albumWithSongs struct {
	albumEntry
	Song []songEntry `json:"song"`
}

type playlistEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SongCount int    `json:"songCount"`
}

type artistEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CoverArt string `json:"coverArt"`
}

// Album summarises one album in the library.
type Album struct {
	ID       string
	Name     string
	Artist   string
	CoverArt string
	Year     int
}

// AlbumTracks is a full album with its track list.
type AlbumTracks struct {
	Album
	Tracks []playlist.Track
}

// Playlist summarises one server-side playlist.
type Playlist struct {
	ID        string
	Name      string
	SongCount int
}

// Artist is a search hit for an artist.
type Artist struct {
	ID       string
	Name     string
	CoverArt string
}

// SearchResult groups the three search3 result kinds.
type SearchResult struct {
	Artists []Artist
	Albums  []Album
	Songs   []playlist.Track
}

func (s songEntry) toTrack() playlist.Track {
	return playlist.Track{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   s.Artist,
		Album:    s.Album,
		Duration: time.Duration(s.Duration) * time.Second,
		CoverArt: s.CoverArt,
		Suffix:   s.Suffix,
		Starred:  s.Starred != "",
	}
}

func toTracks(songs []songEntry) []playlist.Track {
	tracks := make([]playlist.Track, len(songs))
	for i, s := range songs {
		tracks[i] = s.toTrack()
	}
	return tracks
}

func (a albumEntry) toAlbum() Album {
	return Album{
		ID:       a.ID,
		Name:     a.Name,
		Artist:   a.Artist,
		CoverArt: a.CoverArt,
		Year:     a.Year,
	}
}
