// Package queuepanel renders the play queue side panel.
package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crest/internal/playlist"
	"github.com/llehouerou/crest/internal/ui/render"
)

// Model is the queue panel state.
type Model struct {
	tracks  []playlist.Track
	current int
	shuffle bool
	repeat  bool

	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

func New() Model {
	return Model{current: -1}
}

// SetQueue replaces the displayed tracks and playing index.
func (m *Model) SetQueue(tracks []playlist.Track, current int) {
	m.tracks = tracks
	m.current = current
	if m.cursor >= len(tracks) {
		m.cursor = max(len(tracks)-1, 0)
	}
	m.clampOffset()
}

// SetModes updates the shuffle and repeat indicators.
func (m *Model) SetModes(shuffle, repeat bool) {
	m.shuffle = shuffle
	m.repeat = repeat
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

func (m *Model) SetFocused(focused bool) { m.focused = focused }
func (m *Model) Focused() bool           { return m.focused }

// Cursor returns the selected queue index.
func (m *Model) Cursor() int { return m.cursor }

func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.clampOffset()
}

func (m *Model) CursorDown() {
	if m.cursor < len(m.tracks)-1 {
		m.cursor++
	}
	m.clampOffset()
}

// FocusCurrent moves the cursor to the playing track.
func (m *Model) FocusCurrent() {
	if m.current >= 0 && m.current < len(m.tracks) {
		m.cursor = m.current
	}
	m.clampOffset()
}

func (m *Model) clampOffset() {
	visible := m.listHeight()
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the panel height minus border, header, and separator.
func (m *Model) listHeight() int {
	return m.height - 4
}

// View renders the panel.
func (m *Model) View() string {
	if m.width <= 2 || m.height <= 4 {
		return ""
	}
	innerWidth := m.width - 2

	header := m.renderHeader(innerWidth)
	separator := render.Separator(innerWidth)
	list := m.renderTrackList(innerWidth)

	style := panelStyle
	if m.focused {
		style = panelFocusedStyle
	}
	return style.Width(innerWidth).Render(header + "\n" + separator + "\n" + list)
}

func (m *Model) renderHeader(innerWidth int) string {
	position := m.current + 1
	if position < 1 {
		position = 0
	}
	left := fmt.Sprintf("Queue (%d/%d)", position, len(m.tracks))

	var icons []string
	if m.shuffle {
		icons = append(icons, shuffleSymbol)
	}
	if m.repeat {
		icons = append(icons, repeatSymbol)
	}
	right := strings.Join(icons, " ")

	line := render.Row(render.Truncate(left, innerWidth-lipgloss.Width(right)-1), right, innerWidth)
	return headerStyle.Render(line)
}

func (m *Model) renderTrackList(innerWidth int) string {
	height := m.listHeight()
	lines := make([]string, 0, height)
	for i := range height {
		idx := i + m.offset
		if idx >= len(m.tracks) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.tracks[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTrackLine(track playlist.Track, idx, width int) string {
	prefix := "  "
	if idx == m.current {
		prefix = playingSymbol + " "
	}

	contentWidth := width - 2
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	line := prefix +
		render.TruncateAndPad(track.Title, titleWidth) +
		render.TruncateAndPad(track.Artist, artistWidth)

	return m.trackStyle(idx).Render(line)
}

func (m *Model) trackStyle(idx int) lipgloss.Style {
	isCursor := idx == m.cursor && m.focused
	isPlaying := idx == m.current
	isPlayed := m.current >= 0 && idx < m.current

	switch {
	case isCursor && isPlaying:
		return cursorStyle.Inherit(playingStyle)
	case isCursor:
		return cursorStyle
	case isPlaying:
		return playingStyle
	case isPlayed:
		return dimmedStyle
	default:
		return trackStyle
	}
}
