package playerbar

import (
	"strings"
	"testing"
	"time"
)

func TestRender_EmptyWhenStopped(t *testing.T) {
	if got := Render(State{}, 80); got != "" {
		t.Errorf("stopped bar should render empty, got %q", got)
	}
}

func TestRender_ShowsTitleAndTimes(t *testing.T) {
	s := State{
		Playing:  true,
		Title:    "Karma Police",
		Artist:   "Radiohead",
		Position: 75 * time.Second,
		Duration: 260 * time.Second,
		Volume:   1.0,
	}

	out := Render(s, 100)
	if !strings.Contains(out, "Karma Police") {
		t.Error("title missing from bar")
	}
	if !strings.Contains(out, "1:15") || !strings.Contains(out, "4:20") {
		t.Errorf("times missing from bar: %q", out)
	}
	if !strings.Contains(out, playSymbol) {
		t.Error("play symbol missing")
	}
}

func TestRender_PausedSymbol(t *testing.T) {
	s := State{Paused: true, Title: "x", Duration: time.Minute, Volume: 0.5}

	out := Render(s, 80)
	if !strings.Contains(out, pauseSymbol) {
		t.Error("pause symbol missing")
	}
}

func TestRender_ModeIndicators(t *testing.T) {
	s := State{
		Playing:  true,
		Title:    "x",
		Duration: time.Minute,
		Shuffle:  true,
		Repeat:   true,
		Volume:   0.8,
	}

	out := Render(s, 100)
	if !strings.Contains(out, shuffleSymbol) {
		t.Error("shuffle indicator missing")
	}
	if !strings.Contains(out, repeatSymbol) {
		t.Error("repeat indicator missing")
	}
	if !strings.Contains(out, "80%") {
		t.Error("volume percentage missing")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{60 * time.Second, "1:00"},
		{330 * time.Second, "5:30"},
		{3661 * time.Second, "61:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
