package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crest/internal/errmsg"
	"github.com/llehouerou/crest/internal/keymap"
	"github.com/llehouerou/crest/internal/navigation"
	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/presence"
	"github.com/llehouerou/crest/internal/state"
	"github.com/llehouerou/crest/internal/ui/playerbar"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	queueWidth = 42
)

// Update routes messages to the right handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case albumsLoadedMsg:
		m.setAlbumRows("Albums", msg.albums)
		return m, nil

	case albumLoadedMsg:
		m.setTrackRows(msg.album.Name, msg.album.Tracks)
		return m, nil

	case playlistsLoadedMsg:
		m.setPlaylistRows(msg.playlists)
		return m, nil

	case playlistLoadedMsg:
		title := "Playlist"
		if f, ok := m.nav.Current(); ok && f.Param == msg.id {
			title = f.Title
		}
		m.setTrackRows(title, msg.tracks)
		return m, nil

	case tracksLoadedMsg:
		m.setTrackRows(msg.title, msg.tracks)
		return m, nil

	case recentLoadedMsg:
		m.setRecentRows(msg.entries)
		return m, nil

	case searchLoadedMsg:
		m.setSearchRows(msg.query, msg.result)
		if f, ok := m.nav.Current(); ok && f.Kind == navigation.KindArtist {
			m.screenTitle = f.Title
		}
		return m, nil

	case lyricsFetchedMsg:
		m.lyricsView.SetResult(msg.result)
		if msg.result.Err != nil {
			m.status = errmsg.Format(errmsg.OpLyricsLoad, msg.result.Err)
		}
		return m, nil

	case starToggledMsg:
		return m.handleStarToggled(msg), nil

	case radioTracksMsg:
		for _, track := range msg.tracks {
			if err := m.deps.Playback.Append(track); err != nil {
				m.status = errmsg.Format(errmsg.OpQueueSave, err)
				break
			}
		}
		return m, nil

	case trackChangedMsg:
		return m.handleTrackChanged(msg)

	case stateChangedMsg:
		m.layout()
		m.updatePresence()
		return m, waitStateChange(m.sub)

	case queueChangedMsg:
		m.queuePanel.SetQueue(msg.Tracks, msg.Index)
		m.saveQueueState()
		return m, waitQueueChange(m.sub)

	case modeChangedMsg:
		m.queuePanel.SetModes(msg.Shuffle, msg.Repeat)
		m.saveQueueState()
		return m, waitModeChange(m.sub)

	case playbackErrorMsg:
		m.status = errmsg.Format(errmsg.Op(msg.Operation), msg.Err)
		return m, waitPlaybackError(m.sub)

	case subscriptionClosedMsg:
		return m, nil

	case errorMsg:
		m.status = msg.text
		m.loading = false
		return m, nil

	case tickMsg:
		if m.lyricsVisible && m.deps.Playback.State().IsActive() {
			m.lyricsView.Advance(m.deps.Playback.Position())
		}
		return m, tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	key := msg.String()
	if action := m.globalKeys.Resolve(key); action != "" {
		return m.handleGlobalAction(action)
	}
	if m.queuePanel.Focused() {
		return m.handleQueueAction(m.queueKeys.Resolve(key))
	}
	return m.handleBrowserAction(m.browserKeys.Resolve(key))
}

func (m Model) handleGlobalAction(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit

	case keymap.ActionSearch:
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case keymap.ActionBack:
		if m.queuePanel.Focused() {
			m.queuePanel.SetFocused(false)
			return m, nil
		}
		if m.lyricsVisible {
			m.lyricsVisible = false
			return m, nil
		}
		return m.back()

	case keymap.ActionFocusQueue:
		if !m.queueVisible {
			m.queueVisible = true
			m.layout()
		}
		m.queuePanel.SetFocused(!m.queuePanel.Focused())
		if m.queuePanel.Focused() {
			m.queuePanel.FocusCurrent()
		}
		return m, nil

	case keymap.ActionToggleQueue:
		m.queueVisible = !m.queueVisible
		if !m.queueVisible {
			m.queuePanel.SetFocused(false)
		}
		m.layout()
		return m, nil

	case keymap.ActionToggleLyrics:
		m.lyricsVisible = !m.lyricsVisible
		m.layout()
		return m, nil

	case keymap.ActionViewAlbums:
		return m.showFrame(navigation.Frame{Kind: navigation.KindGrid, Title: "Albums"}, true)
	case keymap.ActionViewPlaylists:
		return m.showFrame(navigation.Frame{Kind: navigation.KindPlaylist, Title: "Playlists"}, true)
	case keymap.ActionViewStarred:
		return m.showFrame(navigation.Frame{Kind: navigation.KindStarred, Title: "Starred"}, true)
	case keymap.ActionViewRecent:
		return m.showFrame(navigation.Frame{Kind: navigation.KindGrid, Param: "recent", Title: "Recently Played"}, true)
	case keymap.ActionViewRandom:
		return m.showFrame(navigation.Frame{Kind: navigation.KindGrid, Param: "random", Title: "Random"}, true)
	case keymap.ActionViewSettings:
		return m.showFrame(navigation.Frame{Kind: navigation.KindSettings, Title: "Settings"}, true)

	case keymap.ActionPlayPause:
		if err := m.deps.Playback.Toggle(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case keymap.ActionNextTrack:
		if err := m.deps.Playback.Next(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case keymap.ActionPreviousTrack:
		if err := m.deps.Playback.Previous(); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case keymap.ActionToggleShuffle:
		m.deps.Playback.ToggleShuffle()
		return m, nil

	case keymap.ActionToggleRepeat:
		m.deps.Playback.ToggleRepeat()
		return m, nil

	case keymap.ActionToggleRadio:
		if m.radio.Toggle() {
			m.status = "Radio on: similar tracks will be queued"
		} else {
			m.status = "Radio off"
		}
		return m, nil

	case keymap.ActionSeekBack:
		if err := m.deps.Playback.Seek(-seekStep); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackSeek, err)
		}
		return m, nil

	case keymap.ActionSeekForward:
		if err := m.deps.Playback.Seek(seekStep); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackSeek, err)
		}
		return m, nil

	case keymap.ActionVolumeUp:
		m.adjustVolume(volumeStep)
		return m, nil

	case keymap.ActionVolumeDown:
		m.adjustVolume(-volumeStep)
		return m, nil

	case keymap.ActionToggleMute:
		m.deps.Player.SetMuted(!m.deps.Player.Muted())
		return m, nil

	case keymap.ActionToggleStar:
		if track := m.deps.Playback.CurrentTrack(); track != nil {
			return m, m.toggleStarCmd(track.ID, !track.Starred)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		m.searching = false
		m.searchInput.Blur()
		if query == "" {
			return m, nil
		}
		return m.showFrame(navigation.Frame{
			Kind:  navigation.KindSearch,
			Param: query,
			Title: "Search: " + query,
		}, false)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleQueueAction(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionCursorUp:
		m.queuePanel.CursorUp()
	case keymap.ActionCursorDown:
		m.queuePanel.CursorDown()
	case keymap.ActionQueuePlay:
		if idx := m.queuePanel.Cursor(); idx >= 0 {
			if err := m.deps.Playback.PlayAt(idx); err != nil {
				m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
			}
		}
	case keymap.ActionQueueRemove:
		if idx := m.queuePanel.Cursor(); idx >= 0 {
			if err := m.deps.Playback.RemoveAt(idx); err != nil {
				m.status = errmsg.Format(errmsg.OpQueueSave, err)
			}
		}
	case keymap.ActionQueueMoveUp:
		if idx := m.queuePanel.Cursor(); idx > 0 {
			if err := m.deps.Playback.Move(idx, idx-1); err == nil {
				m.queuePanel.CursorUp()
			}
		}
	case keymap.ActionQueueMoveDown:
		if idx := m.queuePanel.Cursor(); idx >= 0 {
			if err := m.deps.Playback.Move(idx, idx+1); err == nil {
				m.queuePanel.CursorDown()
			}
		}
	}
	return m, nil
}

func (m Model) handleBrowserAction(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionCursorUp:
		m.browser.CursorUp()
	case keymap.ActionCursorDown:
		m.browser.CursorDown()
	case keymap.ActionPageUp:
		m.browser.PageUp()
	case keymap.ActionPageDown:
		m.browser.PageDown()
	case keymap.ActionGotoTop:
		m.browser.GotoTop()
	case keymap.ActionGotoBottom:
		m.browser.GotoBottom()
	case keymap.ActionOpen:
		return m.activateRow()
	case keymap.ActionAppend:
		if ref, ok := m.selectedRef(); ok && ref.kind == rowTrack {
			if err := m.deps.Playback.Append(m.listTracks[ref.index]); err != nil {
				m.status = errmsg.Format(errmsg.OpQueueSave, err)
			}
		}
	case keymap.ActionInsertNext:
		if ref, ok := m.selectedRef(); ok && ref.kind == rowTrack {
			if err := m.deps.Playback.InsertNext(m.listTracks[ref.index]); err != nil {
				m.status = errmsg.Format(errmsg.OpQueueSave, err)
			}
		}
	}
	return m, nil
}

func (m Model) selectedRef() (rowRef, bool) {
	idx := m.browser.Cursor()
	if idx < 0 || idx >= len(m.refs) {
		return rowRef{}, false
	}
	return m.refs[idx], true
}

// activateRow opens the selected row: containers navigate, tracks play.
func (m Model) activateRow() (tea.Model, tea.Cmd) {
	ref, ok := m.selectedRef()
	if !ok {
		return m, nil
	}
	switch ref.kind {
	case rowAlbum:
		return m.showFrame(navigation.Frame{Kind: navigation.KindAlbum, Param: ref.id, Title: ref.title}, false)
	case rowPlaylist:
		return m.showFrame(navigation.Frame{Kind: navigation.KindPlaylist, Param: ref.id, Title: ref.title}, false)
	case rowArtist:
		return m.showFrame(navigation.Frame{Kind: navigation.KindArtist, Param: ref.id, Title: ref.title}, false)
	case rowTrack:
		if err := m.deps.Playback.PlayFromList(m.listTracks, ref.index); err != nil {
			m.status = errmsg.Format(errmsg.OpPlaybackStart, err)
		}
	}
	return m, nil
}

// showFrame records the visited screen and starts its load. It is also
// the back-navigation re-render path: the push that follows a pop is
// consumed by the stack's suppress flag, so going back never grows
// history.
func (m Model) showFrame(frame navigation.Frame, isRoot bool) (tea.Model, tea.Cmd) {
	m.nav.Push(frame, isRoot)
	m.status = ""
	if frame.Kind == navigation.KindSettings {
		m.setSettingsRows()
		return m, nil
	}
	m.loading = true
	m.screenTitle = frame.Title
	return m, m.loadFrameCmd(frame)
}

func (m Model) loadFrameCmd(frame navigation.Frame) tea.Cmd {
	switch frame.Kind {
	case navigation.KindGrid:
		switch frame.Param {
		case "recent":
			return m.loadRecentCmd()
		case "random":
			return m.loadRandomCmd()
		default:
			return m.loadAlbumsCmd()
		}
	case navigation.KindAlbum:
		return m.loadAlbumCmd(frame.Param)
	case navigation.KindPlaylist:
		if frame.Param == "" {
			return m.loadPlaylistsCmd()
		}
		return m.loadPlaylistCmd(frame.Param)
	case navigation.KindStarred:
		return m.loadStarredCmd()
	case navigation.KindSearch, navigation.KindArtist:
		return m.searchCmd(frame.Param)
	}
	return nil
}

func (m Model) back() (tea.Model, tea.Cmd) {
	frame, ok := m.nav.Pop()
	if !ok {
		return m, nil
	}
	return m.showFrame(frame, false)
}

func (m Model) handleTrackChanged(msg trackChangedMsg) (tea.Model, tea.Cmd) {
	m.queuePanel.SetQueue(m.deps.Playback.QueueTracks(), msg.Index)
	m.layout()

	if msg.Current == nil {
		m.deps.Presence.Clear()
		m.saveQueueState()
		return m, waitTrackChange(m.sub)
	}

	track := *msg.Current
	if err := m.deps.State.RecordPlay(track); err != nil {
		m.deps.Log.Warn("failed to record play", "track", track.ID, "err", err)
	}
	m.deps.Notify.TrackStarted(track.Title, track.Artist, track.Album)
	m.updatePresence()
	m.saveQueueState()

	m.lyricsView.SetTrack(track.ID, track.Title, track.Artist)

	cmds := []tea.Cmd{m.fetchLyricsCmd(track), waitTrackChange(m.sub)}
	if m.radio.NeedsMore(m.deps.Playback.QueueLen(), msg.Index) {
		cmds = append(cmds, m.radioRefillCmd(track.ID))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleStarToggled(msg starToggledMsg) Model {
	m.deps.Playback.SetStarred(msg.trackID, msg.starred)
	for i := range m.listTracks {
		if m.listTracks[i].ID == msg.trackID {
			m.listTracks[i].Starred = msg.starred
		}
	}
	m.queuePanel.SetQueue(m.deps.Playback.QueueTracks(), m.deps.Playback.QueueIndex())
	return *m
}

func (m *Model) adjustVolume(delta float64) {
	v := m.deps.Player.Volume() + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.deps.Player.SetVolume(v)
	m.deps.State.SaveVolume(v)
}

func (m *Model) updatePresence() {
	track := m.deps.Playback.CurrentTrack()
	if track == nil {
		m.deps.Presence.Clear()
		return
	}
	m.deps.Presence.Update(presence.Info{
		TrackID:  track.ID,
		Title:    track.Title,
		Artist:   track.Artist,
		Album:    track.Album,
		Position: m.deps.Playback.Position(),
		Duration: m.deps.Playback.Duration(),
		Paused:   m.deps.Playback.State() == playback.StatePaused,
	})
}

func (m *Model) saveQueueState() {
	qs := state.QueueState{
		Tracks:       m.deps.Playback.QueueTracks(),
		CurrentIndex: m.deps.Playback.QueueIndex(),
		Shuffle:      m.deps.Playback.Shuffle(),
		Repeat:       m.deps.Playback.Repeat(),
	}
	if err := m.deps.State.SaveQueue(qs); err != nil {
		m.deps.Log.Warn("failed to save queue", "err", err)
	}
}

// layout recomputes child component sizes from the window size and the
// visible panels.
func (m *Model) layout() {
	headerHeight := 2
	statusHeight := 1
	playerHeight := 0
	if m.deps.Playback.State().IsActive() {
		playerHeight = playerbar.Height
	}
	bodyHeight := m.height - headerHeight - statusHeight - playerHeight
	if bodyHeight < 0 {
		bodyHeight = 0
	}

	panelWidth := 0
	if m.queueVisible && m.width >= 2*queueWidth {
		panelWidth = queueWidth
	}
	mainWidth := m.width - panelWidth

	m.browser.SetSize(mainWidth, bodyHeight)
	m.lyricsView.SetSize(mainWidth, bodyHeight)
	m.queuePanel.SetSize(panelWidth, bodyHeight)
	m.searchInput.Width = max(m.width-4, 10)
}
