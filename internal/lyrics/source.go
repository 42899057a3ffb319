package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/crest/internal/lrclib"
)

// Availability classifies a fetch outcome. NotFound (the provider has
// no lyrics for this track) and Failed (the fetch itself broke) are
// distinct so the host can message them differently, though both render
// as no active line.
type Availability int

const (
	Synced Availability = iota
	Plain
	NotFound
	Failed
)

// String returns the availability name.
func (a Availability) String() string {
	switch a {
	case Synced:
		return "synced"
	case Plain:
		return "plain"
	case NotFound:
		return "not found"
	case Failed:
		return "fetch failed"
	default:
		return "unknown"
	}
}

// TrackInfo identifies the track lyrics are fetched for. The ID travels
// with the result so a completion arriving after the playing track has
// changed can be recognised as stale and discarded.
type TrackInfo struct {
	ID       string
	Artist   string
	Title    string
	Duration time.Duration
}

// Result is a completed lyrics fetch.
type Result struct {
	TrackID      string
	Timeline     *Timeline
	Availability Availability
	Err          error
}

// Source fetches lyrics from the on-disk cache or the lrclib API.
type Source struct {
	client   *lrclib.Client
	cacheDir string
}

// NewSource creates a lyrics source with the default cache location.
func NewSource() *Source {
	dir, err := xdg.CacheFile(filepath.Join("crest", "lyrics"))
	if err != nil {
		dir = ""
	}
	return &Source{
		client:   lrclib.New(),
		cacheDir: dir,
	}
}

// Fetch retrieves lyrics for a track, trying the cache before the API.
// Synced API results are written back to the cache.
func (s *Source) Fetch(ctx context.Context, track TrackInfo) Result {
	if track.Artist == "" || track.Title == "" {
		return Result{TrackID: track.ID, Availability: NotFound}
	}

	if timeline := s.loadFromCache(track.Artist, track.Title); timeline != nil {
		return Result{TrackID: track.ID, Timeline: timeline, Availability: Synced}
	}

	lr, err := s.client.Get(ctx, track.Artist, track.Title, track.Duration)
	if err != nil {
		if errors.Is(err, lrclib.ErrNotFound) {
			return Result{TrackID: track.ID, Availability: NotFound}
		}
		return Result{TrackID: track.ID, Availability: Failed, Err: err}
	}

	if lr.SyncedLyrics != "" {
		timeline, err := ParseLRC(strings.NewReader(lr.SyncedLyrics))
		if err == nil && timeline.Len() > 0 {
			_ = s.saveToCache(track.Artist, track.Title, lr.SyncedLyrics)
			return Result{TrackID: track.ID, Timeline: timeline, Availability: Synced}
		}
	}
	if lr.PlainLyrics != "" {
		timeline := NewPlainTimeline(lr.PlainLyrics)
		if timeline.Len() > 0 {
			return Result{TrackID: track.ID, Timeline: timeline, Availability: Plain}
		}
	}
	return Result{TrackID: track.ID, Availability: NotFound}
}

func (s *Source) loadFromCache(artist, title string) *Timeline {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	timeline, err := ParseLRC(f)
	if err != nil || !timeline.IsSynced() {
		return nil
	}
	return timeline
}

func (s *Source) saveToCache(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
