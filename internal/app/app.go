// Package app hosts the root bubbletea model: it owns the navigation
// stack, the library browser, the queue and lyrics panels, and routes
// playback events into the UI.
package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/crest/internal/config"
	"github.com/llehouerou/crest/internal/keymap"
	"github.com/llehouerou/crest/internal/lyrics"
	"github.com/llehouerou/crest/internal/navigation"
	"github.com/llehouerou/crest/internal/notify"
	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/player"
	"github.com/llehouerou/crest/internal/playlist"
	"github.com/llehouerou/crest/internal/presence"
	"github.com/llehouerou/crest/internal/radio"
	"github.com/llehouerou/crest/internal/state"
	"github.com/llehouerou/crest/internal/subsonic"
	"github.com/llehouerou/crest/internal/ui/browser"
	"github.com/llehouerou/crest/internal/ui/lyricsview"
	"github.com/llehouerou/crest/internal/ui/queuepanel"
)

const randomSongCount = 50

// Deps bundles everything the UI talks to. All fields are wired in
// main before the program starts.
type Deps struct {
	Cfg      *config.Config
	Log      *log.Logger
	Subsonic *subsonic.Client
	Playback playback.Service
	Player   player.Interface
	State    *state.Manager
	Lyrics   *lyrics.Source
	Presence *presence.Updater
	Notify   *notify.Notifier
}

// Model is the root application model.
type Model struct {
	deps  Deps
	nav   *navigation.Stack
	sub   *playback.Subscription
	radio *radio.Radio

	browser     browser.Model
	refs        []rowRef
	listTracks  []playlist.Track
	loading     bool
	screenTitle string

	queuePanel    queuepanel.Model
	queueVisible  bool
	lyricsView    lyricsview.Model
	lyricsVisible bool

	searchInput textinput.Model
	searching   bool

	globalKeys  *keymap.Resolver
	browserKeys *keymap.Resolver
	queueKeys   *keymap.Resolver

	status string
	width  int
	height int
}

// New builds the initial model and subscribes to playback events.
func New(deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "search artists, albums, songs"
	input.CharLimit = 120

	m := Model{
		deps:        deps,
		nav:         navigation.NewStack(),
		sub:         deps.Playback.Subscribe(),
		radio:       radio.New(),
		browser:     browser.New(),
		queuePanel:  queuepanel.New(),
		lyricsView:  lyricsview.New(),
		searchInput: input,
		globalKeys:  keymap.NewResolver(keymap.ByContext("global")),
		browserKeys: keymap.NewResolver(keymap.ByContext("browser")),
		queueKeys:   keymap.NewResolver(keymap.ByContext("queue")),
	}
	m.queuePanel.SetQueue(deps.Playback.QueueTracks(), deps.Playback.QueueIndex())
	m.queuePanel.SetModes(deps.Playback.Shuffle(), deps.Playback.Repeat())

	root := navigation.Frame{Kind: navigation.KindGrid, Title: "Albums"}
	m.nav.Push(root, true)
	m.loading = true
	m.screenTitle = root.Title
	return m
}

// Init starts the root screen load and the event pumps.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadAlbumsCmd(),
		waitTrackChange(m.sub),
		waitStateChange(m.sub),
		waitQueueChange(m.sub),
		waitModeChange(m.sub),
		waitPlaybackError(m.sub),
		tickCmd(),
	)
}
