// Package icons maps library entities to display glyphs. The style is
// picked once at startup from config: nerd font glyphs, plain unicode,
// or no icons at all for minimal terminals.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Artist   string
	Album    string
	Playlist string
	Track    string
	Favorite string
}

var (
	nerdIcons = Icons{
		Artist:   " ", // nf-fa-user
		Album:    "󰀥 ",      // nf-md-album
		Playlist: "󰲸 ",      // nf-md-playlist_music
		Track:    " ", // nf-fa-music
		Favorite: "󰣐",       // nf-md-heart
	}

	unicodeIcons = Icons{
		Artist:   "👤 ",
		Album:    "💿 ",
		Playlist: "📋 ",
		Track:    "🎵 ",
		Favorite: "♥",
	}

	noneIcons = Icons{
		Favorite: "*",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init selects the active icon set. Call once at startup with the
// config value; unknown styles fall back to none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// FormatArtist prefixes an artist name with its icon.
func FormatArtist(name string) string {
	return current.Artist + name
}

// FormatAlbum prefixes an album name with its icon.
func FormatAlbum(name string) string {
	return current.Album + name
}

// FormatPlaylist prefixes a playlist name with its icon.
func FormatPlaylist(name string) string {
	return current.Playlist + name
}

// FormatTrack prefixes a track title with its icon.
func FormatTrack(title string) string {
	return current.Track + title
}

// Favorite returns the starred indicator.
func Favorite() string {
	return current.Favorite
}
