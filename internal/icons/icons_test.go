package icons

import (
	"strings"
	"testing"
)

func TestInit_SelectsStyle(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "fancy", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			if current != tt.want {
				t.Errorf("Init(%q) selected wrong icon set", tt.style)
			}
		})
	}
}

func TestFormat_NoneStyleLeavesNamesBare(t *testing.T) {
	Init("none")

	if got := FormatAlbum("Kind of Blue"); got != "Kind of Blue" {
		t.Errorf("FormatAlbum() = %q, want bare name", got)
	}
	if got := FormatArtist("Miles Davis"); got != "Miles Davis" {
		t.Errorf("FormatArtist() = %q, want bare name", got)
	}
}

func TestFormat_UnicodePrefixes(t *testing.T) {
	Init("unicode")
	t.Cleanup(func() { Init("none") })

	got := FormatPlaylist("Morning")
	if !strings.HasSuffix(got, "Morning") || got == "Morning" {
		t.Errorf("FormatPlaylist() = %q, want icon prefix", got)
	}
}
