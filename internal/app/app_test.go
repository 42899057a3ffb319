package app

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crest/internal/config"
	"github.com/llehouerou/crest/internal/logging"
	"github.com/llehouerou/crest/internal/lyrics"
	"github.com/llehouerou/crest/internal/navigation"
	"github.com/llehouerou/crest/internal/notify"
	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/player"
	"github.com/llehouerou/crest/internal/playlist"
	"github.com/llehouerou/crest/internal/presence"
	"github.com/llehouerou/crest/internal/state"
	"github.com/llehouerou/crest/internal/subsonic"
)

type stubStreams struct{}

func (stubStreams) StreamURL(id string) string {
	return "http://srv/rest/stream?id=" + id
}

func newTestModel(t *testing.T) Model {
	t.Helper()

	mgr, err := state.OpenAt(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	mock := player.NewMock()
	svc := playback.New(mock, playlist.NewQueue(), stubStreams{})
	t.Cleanup(func() { svc.Close() })

	m := New(Deps{
		Cfg:      &config.Config{},
		Log:      logging.New(io.Discard),
		Subsonic: subsonic.New("http://example.invalid", "user", "pass"),
		Playback: svc,
		Player:   mock,
		State:    mgr,
		Lyrics:   lyrics.NewSource(),
		Presence: presence.NewUpdater(nil, "", false),
		Notify:   notify.New(false),
	})
	upd, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return upd.(Model)
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	upd, _ := m.Update(msg)
	return upd.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testAlbums() []subsonic.Album {
	return []subsonic.Album{
		{ID: "al1", Name: "First Album", Artist: "Artist A", Year: 2001},
		{ID: "al2", Name: "Second Album", Artist: "Artist B"},
	}
}

func testTracks() []playlist.Track {
	return []playlist.Track{
		{ID: "t1", Title: "One", Artist: "Artist A"},
		{ID: "t2", Title: "Two", Artist: "Artist A"},
	}
}

func TestOpeningAlbumPushesFrame(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, albumsLoadedMsg{albums: testAlbums()})

	m = apply(t, m, key("enter"))

	if got := m.nav.Depth(); got != 2 {
		t.Fatalf("nav depth after opening album = %d, want 2", got)
	}
	f, _ := m.nav.Current()
	if f.Kind != navigation.KindAlbum || f.Param != "al1" {
		t.Errorf("current frame = %v %q, want album al1", f.Kind, f.Param)
	}
}

func TestRootViewResetsStack(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, albumsLoadedMsg{albums: testAlbums()})
	m = apply(t, m, key("enter"))

	m = apply(t, m, key("2"))

	if got := m.nav.Depth(); got != 1 {
		t.Fatalf("nav depth after switching root view = %d, want 1", got)
	}
	f, _ := m.nav.Current()
	if f.Kind != navigation.KindPlaylist {
		t.Errorf("current frame kind = %v, want playlists", f.Kind)
	}
}

func TestBackNavigationDoesNotGrowStack(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, albumsLoadedMsg{albums: testAlbums()})
	m = apply(t, m, key("enter"))

	m = apply(t, m, key("esc"))

	if got := m.nav.Depth(); got != 1 {
		t.Fatalf("nav depth after back = %d, want 1", got)
	}
	f, _ := m.nav.Current()
	if f.Kind != navigation.KindGrid {
		t.Errorf("current frame kind = %v, want grid", f.Kind)
	}

	// Back at the root, another esc is a no-op.
	m = apply(t, m, key("esc"))
	if got := m.nav.Depth(); got != 1 {
		t.Errorf("nav depth after esc at root = %d, want 1", got)
	}
}

func TestSuccessiveSearchesReplaceFrame(t *testing.T) {
	m := newTestModel(t)

	for _, query := range []string{"abba", "abc"} {
		m = apply(t, m, key("/"))
		for _, r := range query {
			m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
		m = apply(t, m, key("enter"))
	}

	if got := m.nav.Depth(); got != 2 {
		t.Fatalf("nav depth after two searches = %d, want 2", got)
	}
	f, _ := m.nav.Current()
	if f.Kind != navigation.KindSearch || f.Param != "abc" {
		t.Errorf("current frame = %v %q, want search abc", f.Kind, f.Param)
	}
}

func TestSearchEscCancels(t *testing.T) {
	m := newTestModel(t)
	depth := m.nav.Depth()

	m = apply(t, m, key("/"))
	if !m.searching {
		t.Fatal("expected searching mode after /")
	}
	m = apply(t, m, key("esc"))

	if m.searching {
		t.Error("expected searching mode cancelled")
	}
	if got := m.nav.Depth(); got != depth {
		t.Errorf("nav depth changed by cancelled search: %d, want %d", got, depth)
	}
}

func TestTrackActivationStartsPlayback(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, tracksLoadedMsg{title: "Starred", tracks: testTracks()})

	m = apply(t, m, key("enter"))

	track := m.deps.Playback.CurrentTrack()
	if track == nil || track.ID != "t1" {
		t.Fatalf("current track = %v, want t1", track)
	}
	if got := m.deps.Playback.QueueLen(); got != 2 {
		t.Errorf("queue length = %d, want 2", got)
	}
}

func TestAppendFromBrowser(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, tracksLoadedMsg{title: "Starred", tracks: testTracks()})
	m = apply(t, m, key("enter"))

	m.browser.CursorDown()
	m = apply(t, m, key("a"))

	if got := m.deps.Playback.QueueLen(); got != 3 {
		t.Errorf("queue length after append = %d, want 3", got)
	}
}

func TestQueuePanelTabFocus(t *testing.T) {
	m := newTestModel(t)

	m = apply(t, m, key("tab"))
	if !m.queueVisible || !m.queuePanel.Focused() {
		t.Fatal("expected queue panel visible and focused after tab")
	}

	m = apply(t, m, key("tab"))
	if m.queuePanel.Focused() {
		t.Error("expected queue panel unfocused after second tab")
	}
}

func TestBreadcrumbShowsPath(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, albumsLoadedMsg{albums: testAlbums()})
	m = apply(t, m, key("enter"))
	m = apply(t, m, albumLoadedMsg{album: &subsonic.AlbumTracks{
		Album:  subsonic.Album{ID: "al1", Name: "First Album"},
		Tracks: testTracks(),
	}})

	view := m.View()
	if !strings.Contains(view, "Albums") || !strings.Contains(view, "First Album") {
		t.Errorf("breadcrumb missing path elements:\n%s", view)
	}
}

func TestStarToggleUpdatesListAndQueue(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, tracksLoadedMsg{title: "Starred", tracks: testTracks()})
	m = apply(t, m, key("enter"))

	m = apply(t, m, starToggledMsg{trackID: "t1", starred: true})

	if !m.listTracks[0].Starred {
		t.Error("list track not marked starred")
	}
	queue := m.deps.Playback.QueueTracks()
	if len(queue) == 0 || !queue[0].Starred {
		t.Error("queued track not marked starred")
	}
}

func TestRadioTracksAppendToQueue(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, tracksLoadedMsg{title: "Starred", tracks: testTracks()})
	m = apply(t, m, key("enter"))

	m = apply(t, m, key("d"))
	if !m.radio.Enabled() {
		t.Fatal("expected radio enabled after d")
	}
	m = apply(t, m, radioTracksMsg{tracks: []playlist.Track{{ID: "r1", Title: "Similar"}}})

	if got := m.deps.Playback.QueueLen(); got != 3 {
		t.Errorf("queue length after radio refill = %d, want 3", got)
	}
}

func TestErrorMessageShownInStatus(t *testing.T) {
	m := newTestModel(t)

	m = apply(t, m, errorMsg{text: "Failed to load albums: boom"})

	if !strings.Contains(m.View(), "Failed to load albums") {
		t.Error("status line missing error text")
	}
}
