package keymap

// Binding ties keys to an action within one context.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "browser", "queue"
}

// All contains every key binding, for dispatch and help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", "global"},
	{[]string{"/"}, ActionSearch, "Search", "global"},
	{[]string{"esc", "backspace"}, ActionBack, "Back", "global"},
	{[]string{"tab"}, ActionFocusQueue, "Focus queue panel", "global"},
	{[]string{"e"}, ActionToggleQueue, "Show/hide queue panel", "global"},
	{[]string{"l"}, ActionToggleLyrics, "Show/hide lyrics", "global"},
	{[]string{"1"}, ActionViewAlbums, "Albums", "global"},
	{[]string{"2"}, ActionViewPlaylists, "Playlists", "global"},
	{[]string{"3"}, ActionViewStarred, "Starred", "global"},
	{[]string{"4"}, ActionViewRecent, "Recently played", "global"},
	{[]string{"5"}, ActionViewRandom, "Random songs", "global"},
	{[]string{","}, ActionViewSettings, "Settings", "global"},

	// Playback (global as well; playback keys work everywhere)
	{[]string{" "}, ActionPlayPause, "Play/pause", "global"},
	{[]string{"n"}, ActionNextTrack, "Next track", "global"},
	{[]string{"p"}, ActionPreviousTrack, "Previous track", "global"},
	{[]string{"s"}, ActionToggleShuffle, "Toggle shuffle", "global"},
	{[]string{"r"}, ActionToggleRepeat, "Toggle repeat", "global"},
	{[]string{"d"}, ActionToggleRadio, "Toggle radio mode", "global"},
	{[]string{"["}, ActionSeekBack, "Seek -5s", "global"},
	{[]string{"]"}, ActionSeekForward, "Seek +5s", "global"},
	{[]string{"+", "="}, ActionVolumeUp, "Volume up", "global"},
	{[]string{"-"}, ActionVolumeDown, "Volume down", "global"},
	{[]string{"m"}, ActionToggleMute, "Mute", "global"},
	{[]string{"f"}, ActionToggleStar, "Star/unstar current track", "global"},

	// Browser
	{[]string{"up", "k"}, ActionCursorUp, "Move up", "browser"},
	{[]string{"down", "j"}, ActionCursorDown, "Move down", "browser"},
	{[]string{"pgup"}, ActionPageUp, "Page up", "browser"},
	{[]string{"pgdown"}, ActionPageDown, "Page down", "browser"},
	{[]string{"g"}, ActionGotoTop, "First item", "browser"},
	{[]string{"G"}, ActionGotoBottom, "Last item", "browser"},
	{[]string{"enter"}, ActionOpen, "Open/play", "browser"},
	{[]string{"a"}, ActionAppend, "Add to queue", "browser"},
	{[]string{"i"}, ActionInsertNext, "Play next", "browser"},

	// Queue panel
	{[]string{"up", "k"}, ActionCursorUp, "Move up", "queue"},
	{[]string{"down", "j"}, ActionCursorDown, "Move down", "queue"},
	{[]string{"enter"}, ActionQueuePlay, "Play track", "queue"},
	{[]string{"x"}, ActionQueueRemove, "Remove track", "queue"},
	{[]string{"K"}, ActionQueueMoveUp, "Move track up", "queue"},
	{[]string{"J"}, ActionQueueMoveDown, "Move track down", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
