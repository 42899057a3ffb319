// Package lyricsview renders synchronized lyrics for the playing track.
package lyricsview

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crest/internal/lyrics"
	"github.com/llehouerou/crest/internal/ui/render"
)

// Model holds the lyrics display state for one track.
type Model struct {
	trackID string
	title   string
	artist  string

	timeline     *lyrics.Timeline
	tracker      *lyrics.Tracker
	availability lyrics.Availability
	loading      bool
	currentLine  int

	width  int
	height int
}

func New() Model {
	return Model{currentLine: -1}
}

// SetTrack marks a new track as loading. Lyrics for a previous track
// are stale the moment the track changes.
func (m *Model) SetTrack(trackID, title, artist string) {
	m.trackID = trackID
	m.title = title
	m.artist = artist
	m.timeline = nil
	m.tracker = nil
	m.availability = lyrics.NotFound
	m.loading = true
	m.currentLine = -1
}

// SetResult installs a fetch result. Results for any track other than
// the one being displayed are dropped.
func (m *Model) SetResult(res lyrics.Result) {
	if res.TrackID != m.trackID {
		return
	}
	m.loading = false
	m.availability = res.Availability
	m.timeline = res.Timeline
	m.currentLine = -1
	if res.Timeline != nil {
		m.tracker = lyrics.NewTracker(res.Timeline)
	}
}

// TrackID returns the track the view is displaying.
func (m *Model) TrackID() string { return m.trackID }

// Advance moves the highlight to the line for pos. It reports whether
// the highlighted line changed.
func (m *Model) Advance(pos time.Duration) bool {
	if m.tracker == nil {
		return false
	}
	idx, changed := m.tracker.Update(pos)
	if changed {
		m.currentLine = idx
	}
	return changed
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the lyrics panel.
func (m *Model) View() string {
	if m.width <= 2 || m.height <= 4 {
		return ""
	}
	innerWidth := m.width - 2

	header := headerStyle.Render(render.TruncateAndPad(m.title+" — "+m.artist, innerWidth))
	separator := render.Separator(innerWidth)
	body := m.renderBody(innerWidth, m.height-4)

	return panelStyle.Width(innerWidth).Render(header + "\n" + separator + "\n" + body)
}

func (m *Model) renderBody(width, height int) string {
	switch {
	case m.loading:
		return centerLine("Fetching lyrics…", width, height)
	case m.timeline == nil || m.timeline.Len() == 0:
		return centerLine("No lyrics found", width, height)
	}

	lines := m.timeline.Lines()

	// Keep the current line vertically centered once it scrolls past
	// the middle of the panel.
	offset := 0
	if m.currentLine >= 0 {
		offset = max(m.currentLine-height/2, 0)
	}
	offset = min(offset, max(len(lines)-height, 0))

	out := make([]string, 0, height)
	for i := range height {
		idx := i + offset
		if idx >= len(lines) {
			out = append(out, render.EmptyLine(width))
			continue
		}
		text := render.TruncateAndPad(lines[idx].Text, width)
		if idx == m.currentLine {
			out = append(out, currentLineStyle.Render(text))
		} else {
			out = append(out, lineStyle.Render(text))
		}
	}
	return strings.Join(out, "\n")
}

func centerLine(text string, width, height int) string {
	out := make([]string, height)
	for i := range out {
		out[i] = render.EmptyLine(width)
	}
	if height > 0 {
		out[height/2] = dimStyle.Render(render.TruncateAndPad(text, width))
	}
	return strings.Join(out, "\n")
}

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	currentLineStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
