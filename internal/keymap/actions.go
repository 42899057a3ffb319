// Package keymap defines key bindings and action dispatch for the
// application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionSearch       Action = "search"
	ActionBack         Action = "back"
	ActionFocusQueue   Action = "focus_queue"
	ActionToggleQueue  Action = "toggle_queue"
	ActionToggleLyrics Action = "toggle_lyrics"

	// View switching
	ActionViewAlbums    Action = "view_albums"
	ActionViewPlaylists Action = "view_playlists"
	ActionViewStarred   Action = "view_starred"
	ActionViewRecent    Action = "view_recent"
	ActionViewRandom    Action = "view_random"
	ActionViewSettings  Action = "view_settings"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPreviousTrack Action = "previous_track"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionToggleRepeat  Action = "toggle_repeat"
	ActionToggleRadio   Action = "toggle_radio"
	ActionSeekBack      Action = "seek_back"
	ActionSeekForward   Action = "seek_forward"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionToggleMute    Action = "toggle_mute"
	ActionToggleStar    Action = "toggle_star"

	// Browser actions
	ActionCursorUp   Action = "cursor_up"
	ActionCursorDown Action = "cursor_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionGotoTop    Action = "goto_top"
	ActionGotoBottom Action = "goto_bottom"
	ActionOpen       Action = "open"
	ActionAppend     Action = "append"
	ActionInsertNext Action = "insert_next"

	// Queue panel actions
	ActionQueuePlay     Action = "queue_play"
	ActionQueueRemove   Action = "queue_remove"
	ActionQueueMoveUp   Action = "queue_move_up"
	ActionQueueMoveDown Action = "queue_move_down"
)
