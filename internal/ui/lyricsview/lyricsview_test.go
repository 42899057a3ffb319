package lyricsview

import (
	"strings"
	"testing"
	"time"

	"github.com/llehouerou/crest/internal/lyrics"
)

func syncedTimeline(t *testing.T) *lyrics.Timeline {
	t.Helper()
	tl, err := lyrics.ParseLRC(strings.NewReader("[00:01.50]Hello\n[00:03.00]World\n"))
	if err != nil {
		t.Fatalf("ParseLRC failed: %v", err)
	}
	return tl
}

func TestSetResult_IgnoresStaleTrack(t *testing.T) {
	m := New()
	m.SetTrack("t2", "Title", "Artist")

	m.SetResult(lyrics.Result{
		TrackID:      "t1", // previous track
		Timeline:     syncedTimeline(t),
		Availability: lyrics.Synced,
	})

	m.SetSize(60, 20)
	if out := m.View(); !strings.Contains(out, "Fetching lyrics") {
		t.Error("stale result should not clear the loading state")
	}
}

func TestView_ShowsCurrentLine(t *testing.T) {
	m := New()
	m.SetTrack("t1", "Song", "Artist")
	m.SetResult(lyrics.Result{
		TrackID:      "t1",
		Timeline:     syncedTimeline(t),
		Availability: lyrics.Synced,
	})
	m.SetSize(60, 20)

	if changed := m.Advance(2 * time.Second); !changed {
		t.Fatal("Advance should report a line change at 2s")
	}

	out := m.View()
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "World") {
		t.Errorf("lyrics text missing: %q", out)
	}
}

func TestAdvance_NoTrackerIsFalse(t *testing.T) {
	m := New()
	m.SetTrack("t1", "Song", "Artist")

	if m.Advance(5 * time.Second) {
		t.Error("Advance without a timeline should report no change")
	}
}

func TestView_NotFound(t *testing.T) {
	m := New()
	m.SetTrack("t1", "Song", "Artist")
	m.SetResult(lyrics.Result{TrackID: "t1", Availability: lyrics.NotFound})
	m.SetSize(60, 12)

	if out := m.View(); !strings.Contains(out, "No lyrics found") {
		t.Errorf("missing not-found message: %q", out)
	}
}
