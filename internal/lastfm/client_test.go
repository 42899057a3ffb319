package lastfm

import (
	"errors"
	"testing"
	"time"

	"github.com/llehouerou/crest/internal/playlist"
)

func TestClient_NotAuthenticated(t *testing.T) {
	c := New("key", "secret")

	if c.IsAuthenticated() {
		t.Error("new client should not be authenticated")
	}
	if err := c.UpdateNowPlaying(ScrobbleTrack{Artist: "a", Track: "t"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("UpdateNowPlaying error = %v, want ErrNotAuthenticated", err)
	}
	if err := c.Scrobble(ScrobbleTrack{Artist: "a", Track: "t"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Scrobble error = %v, want ErrNotAuthenticated", err)
	}
}

func TestClient_SetSessionKey(t *testing.T) {
	c := New("key", "secret")

	c.SetSessionKey("sk-123")

	if !c.IsAuthenticated() {
		t.Error("client with session key should be authenticated")
	}
	if c.SessionKey() != "sk-123" {
		t.Errorf("SessionKey() = %q, want sk-123", c.SessionKey())
	}
}

func TestClient_GetAuthURL(t *testing.T) {
	c := New("my-api-key", "secret")

	got := c.GetAuthURL("tok-42")
	want := "https://www.last.fm/api/auth/?api_key=my-api-key&token=tok-42"
	if got != want {
		t.Errorf("GetAuthURL() = %q, want %q", got, want)
	}
}

func TestClient_AuthURLWithCallback(t *testing.T) {
	c := New("my-api-key", "secret")

	got := c.AuthURLWithCallback("http://localhost:9847/callback")
	want := "https://www.last.fm/api/auth/?api_key=my-api-key&cb=http%3A%2F%2Flocalhost%3A9847%2Fcallback"
	if got != want {
		t.Errorf("AuthURLWithCallback() = %q, want %q", got, want)
	}
}

func TestSubmitter_UnauthenticatedIsSilent(t *testing.T) {
	s := NewSubmitter(New("key", "secret"))
	track := playlist.Track{ID: "1", Title: "Song", Artist: "Artist", Duration: 3 * time.Minute}

	if err := s.NowPlaying(t.Context(), track); err != nil {
		t.Errorf("NowPlaying without session should be a no-op, got %v", err)
	}
	if err := s.Scrobble(t.Context(), track); err != nil {
		t.Errorf("Scrobble without session should be a no-op, got %v", err)
	}
}

func TestToScrobbleTrack(t *testing.T) {
	track := playlist.Track{
		ID:       "1",
		Title:    "Song",
		Artist:   "Artist",
		Album:    "Album",
		Duration: 200 * time.Second,
	}

	st := toScrobbleTrack(track)
	if st.Track != "Song" || st.Artist != "Artist" || st.Album != "Album" {
		t.Errorf("conversion lost fields: %+v", st)
	}
	if st.Duration != 200*time.Second {
		t.Errorf("duration = %v, want 200s", st.Duration)
	}
}
