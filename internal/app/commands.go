package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crest/internal/errmsg"
	"github.com/llehouerou/crest/internal/lyrics"
	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/playlist"
)

// requestTimeout bounds every server round trip issued by the UI.
const requestTimeout = 15 * time.Second

func (m Model) loadAlbumsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		albums, err := m.deps.Subsonic.Albums(ctx)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpAlbumsLoad, err)}
		}
		return albumsLoadedMsg{albums: albums}
	}
}

func (m Model) loadAlbumCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		album, err := m.deps.Subsonic.Album(ctx, id)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpAlbumLoad, err)}
		}
		return albumLoadedMsg{album: album}
	}
}

func (m Model) loadPlaylistsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		playlists, err := m.deps.Subsonic.Playlists(ctx)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpPlaylistsLoad, err)}
		}
		return playlistsLoadedMsg{playlists: playlists}
	}
}

func (m Model) loadPlaylistCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tracks, err := m.deps.Subsonic.PlaylistTracks(ctx, id)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpPlaylistLoad, err)}
		}
		return playlistLoadedMsg{id: id, tracks: tracks}
	}
}

func (m Model) loadStarredCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tracks, err := m.deps.Subsonic.Starred(ctx)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpStarredLoad, err)}
		}
		return tracksLoadedMsg{title: "Starred", tracks: tracks}
	}
}

func (m Model) loadRandomCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tracks, err := m.deps.Subsonic.RandomSongs(ctx, randomSongCount)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpRandomLoad, err)}
		}
		return tracksLoadedMsg{title: "Random", tracks: tracks}
	}
}

func (m Model) loadRecentCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.deps.State.RecentlyPlayed()
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpQueueLoad, err)}
		}
		return recentLoadedMsg{entries: entries}
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := m.deps.Subsonic.Search(ctx, query)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpSearch, err)}
		}
		return searchLoadedMsg{query: query, result: result}
	}
}

func (m Model) fetchLyricsCmd(track playlist.Track) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res := m.deps.Lyrics.Fetch(ctx, lyrics.TrackInfo{
			ID:       track.ID,
			Artist:   track.Artist,
			Title:    track.Title,
			Duration: track.Duration,
		})
		return lyricsFetchedMsg{result: res}
	}
}

func (m Model) toggleStarCmd(trackID string, starred bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var err error
		if starred {
			err = m.deps.Subsonic.Star(ctx, trackID)
		} else {
			err = m.deps.Subsonic.Unstar(ctx, trackID)
		}
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpStarToggle, err)}
		}
		return starToggledMsg{trackID: trackID, starred: starred}
	}
}

func (m Model) radioRefillCmd(seedID string) tea.Cmd {
	queued := m.deps.Playback.QueueTracks()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		fresh, err := m.radio.Refill(ctx, m.deps.Subsonic, seedID, queued)
		if err != nil {
			return errorMsg{text: errmsg.Format(errmsg.OpRadioLoad, err)}
		}
		return radioTracksMsg{tracks: fresh}
	}
}

// Subscription pumps. Each returned command blocks on one channel and
// re-arms itself from Update.

func waitTrackChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.TrackChanged:
			return trackChangedMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}

func waitStateChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return stateChangedMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}

func waitQueueChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.QueueChanged:
			return queueChangedMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}

func waitModeChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.ModeChanged:
			return modeChangedMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}

func waitPlaybackError(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return playbackErrorMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
