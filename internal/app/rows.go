package app

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/crest/internal/icons"
	"github.com/llehouerou/crest/internal/playlist"
	"github.com/llehouerou/crest/internal/state"
	"github.com/llehouerou/crest/internal/subsonic"
	"github.com/llehouerou/crest/internal/ui/browser"
)

// rowKind tells Update what activating a browser row means.
type rowKind int

const (
	rowAlbum rowKind = iota
	rowPlaylist
	rowArtist
	rowTrack
	rowStatic
)

// rowRef maps a browser row back to the thing it represents. For
// rowTrack, index points into Model.listTracks.
type rowRef struct {
	kind  rowKind
	id    string
	title string
	index int
}

func (m *Model) setAlbumRows(title string, albums []subsonic.Album) {
	rows := make([]browser.Row, len(albums))
	refs := make([]rowRef, len(albums))
	for i, a := range albums {
		detail := a.Artist
		if a.Year > 0 {
			detail = fmt.Sprintf("%s (%d)", a.Artist, a.Year)
		}
		rows[i] = browser.Row{ID: a.ID, Title: icons.FormatAlbum(a.Name), Detail: detail}
		refs[i] = rowRef{kind: rowAlbum, id: a.ID, title: a.Name}
	}
	m.applyRows(title, rows, refs, nil)
}

func (m *Model) setPlaylistRows(playlists []subsonic.Playlist) {
	rows := make([]browser.Row, len(playlists))
	refs := make([]rowRef, len(playlists))
	for i, p := range playlists {
		rows[i] = browser.Row{ID: p.ID, Title: icons.FormatPlaylist(p.Name), Detail: fmt.Sprintf("%d songs", p.SongCount)}
		refs[i] = rowRef{kind: rowPlaylist, id: p.ID, title: p.Name}
	}
	m.applyRows("Playlists", rows, refs, nil)
}

func (m *Model) setTrackRows(title string, tracks []playlist.Track) {
	rows := make([]browser.Row, len(tracks))
	refs := make([]rowRef, len(tracks))
	for i, t := range tracks {
		rows[i] = browser.Row{ID: t.ID, Title: trackTitle(t), Detail: trackDetail(t)}
		refs[i] = rowRef{kind: rowTrack, id: t.ID, index: i}
	}
	m.applyRows(title, rows, refs, tracks)
}

func (m *Model) setRecentRows(entries []state.PlayedTrack) {
	rows := make([]browser.Row, len(entries))
	refs := make([]rowRef, len(entries))
	tracks := make([]playlist.Track, len(entries))
	for i, e := range entries {
		tracks[i] = e.Track
		rows[i] = browser.Row{ID: e.ID, Title: trackTitle(e.Track), Detail: humanize.Time(e.PlayedAt)}
		refs[i] = rowRef{kind: rowTrack, id: e.ID, index: i}
	}
	m.applyRows("Recently Played", rows, refs, tracks)
}

// setSearchRows flattens the three result kinds into one list, artists
// first, then albums, then songs.
func (m *Model) setSearchRows(query string, result *subsonic.SearchResult) {
	var rows []browser.Row
	var refs []rowRef
	for _, a := range result.Artists {
		rows = append(rows, browser.Row{ID: a.ID, Title: icons.FormatArtist(a.Name), Detail: "artist"})
		refs = append(refs, rowRef{kind: rowArtist, id: a.Name, title: a.Name})
	}
	for _, a := range result.Albums {
		rows = append(rows, browser.Row{ID: a.ID, Title: icons.FormatAlbum(a.Name), Detail: a.Artist + " • album"})
		refs = append(refs, rowRef{kind: rowAlbum, id: a.ID, title: a.Name})
	}
	for i, t := range result.Songs {
		rows = append(rows, browser.Row{ID: t.ID, Title: trackTitle(t), Detail: trackDetail(t)})
		refs = append(refs, rowRef{kind: rowTrack, id: t.ID, index: i})
	}
	m.applyRows("Search: "+query, rows, refs, result.Songs)
}

func (m *Model) setSettingsRows() {
	lastfm := "not configured"
	if m.deps.Cfg.HasLastfm() {
		lastfm = "configured"
	}
	discord := "disabled"
	if m.deps.Cfg.Discord.Enabled {
		discord = "enabled"
	}
	notifications := "disabled"
	if m.deps.Cfg.NotificationsEnabled() {
		notifications = "enabled"
	}
	rows := []browser.Row{
		{Title: "Server", Detail: m.deps.Cfg.Server.URL},
		{Title: "Last.fm scrobbling", Detail: lastfm},
		{Title: "Discord presence", Detail: discord},
		{Title: "Notifications", Detail: notifications},
	}
	refs := make([]rowRef, len(rows))
	for i := range refs {
		refs[i] = rowRef{kind: rowStatic}
	}
	m.applyRows("Settings", rows, refs, nil)
}

func (m *Model) applyRows(title string, rows []browser.Row, refs []rowRef, tracks []playlist.Track) {
	m.browser.SetRows(rows)
	m.refs = refs
	m.listTracks = tracks
	m.screenTitle = title
	m.loading = false
}

func trackTitle(t playlist.Track) string {
	title := t.Title
	if t.Artist != "" {
		title += " – " + t.Artist
	}
	if t.Starred {
		title = icons.Favorite() + " " + title
	}
	return title
}

func trackDetail(t playlist.Track) string {
	if t.Duration <= 0 {
		return ""
	}
	total := int(t.Duration / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
