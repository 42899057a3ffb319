// Package browser renders a scrolling list of library rows: albums,
// playlists, tracks, search hits. It owns cursor and scroll state only;
// what a row means when activated is the caller's business.
package browser

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crest/internal/ui/render"
)

// Row is one selectable line.
type Row struct {
	ID     string // opaque reference passed back on activation
	Title  string
	Detail string // right-aligned secondary text (artist, duration...)
}

// Model is the browser list state.
type Model struct {
	rows   []Row
	cursor int
	offset int
	width  int
	height int
}

func New() Model {
	return Model{}
}

// SetRows replaces the list contents and resets the cursor.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	m.cursor = 0
	m.offset = 0
}

// Rows returns the current contents.
func (m *Model) Rows() []Row {
	return m.rows
}

func (m *Model) Len() int { return len(m.rows) }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// Cursor returns the cursor index, -1 when the list is empty.
func (m *Model) Cursor() int {
	if len(m.rows) == 0 {
		return -1
	}
	return m.cursor
}

// Selected returns the row under the cursor.
func (m *Model) Selected() (Row, bool) {
	if len(m.rows) == 0 {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
		m.clampOffset()
	}
}

func (m *Model) CursorDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		m.clampOffset()
	}
}

func (m *Model) PageUp() {
	m.cursor -= m.pageSize()
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

func (m *Model) PageDown() {
	m.cursor += m.pageSize()
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

func (m *Model) GotoTop() {
	m.cursor = 0
	m.offset = 0
}

func (m *Model) GotoBottom() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = len(m.rows) - 1
	m.clampOffset()
}

func (m *Model) pageSize() int {
	if m.height < 1 {
		return 1
	}
	return m.height
}

func (m *Model) clampOffset() {
	visible := m.height
	if visible < 1 {
		visible = 1
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

var (
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// View renders the visible window of rows.
func (m *Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}
	if len(m.rows) == 0 {
		return render.TruncateAndPad("  (empty)", m.width)
	}

	var b strings.Builder
	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
	}
	return b.String()
}

func (m *Model) renderRow(row Row, selected bool) string {
	title := render.Sanitize(row.Title)
	detail := render.Sanitize(row.Detail)

	line := render.Row("  "+title, detail+" ", m.width)
	if selected {
		return cursorStyle.Render(line)
	}
	if detail != "" {
		// Re-render with a dimmed detail column.
		left := render.TruncateAndPad("  "+title, m.width-lipgloss.Width(detail)-1)
		return left + detailStyle.Render(detail) + " "
	}
	return line
}
