package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/ui/playerbar"
	"github.com/llehouerou/crest/internal/ui/render"
)

var (
	breadcrumbStyle = lipgloss.NewStyle().Bold(true)
	crumbSepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	loadingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// View renders the full application frame.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(render.Separator(m.width))
	b.WriteString("\n")
	b.WriteString(m.renderBody())

	ps := m.playerState()
	if bar := playerbar.Render(ps, m.width); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderHeader shows the search input while searching, the navigation
// breadcrumb otherwise.
func (m Model) renderHeader() string {
	if m.searching {
		return render.TruncateAndPad("/ "+m.searchInput.View(), m.width)
	}

	frames := m.nav.Frames()
	parts := make([]string, 0, len(frames))
	for _, f := range frames {
		title := f.Title
		if title == "" {
			title = f.Kind.String()
		}
		parts = append(parts, title)
	}
	crumb := strings.Join(parts, crumbSepStyle.Render(" › "))
	return breadcrumbStyle.Render(render.Truncate(" "+crumb, m.width))
}

func (m Model) renderBody() string {
	var main string
	switch {
	case m.lyricsVisible:
		main = m.lyricsView.View()
	case m.loading:
		main = loadingStyle.Render("  Loading...")
	default:
		main = m.browser.View()
	}

	if m.queueVisible && m.width >= 2*queueWidth {
		return joinColumns(main, m.queuePanel.View(), m.width-queueWidth)
	}
	return main
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return statusStyle.Render(render.Truncate(" "+m.status, m.width))
	}
	return render.EmptyLine(m.width)
}

func (m Model) playerState() playerbar.State {
	st := m.deps.Playback.State()
	track := m.deps.Playback.CurrentTrack()

	ps := playerbar.State{
		Playing: st == playback.StatePlaying,
		Paused:  st == playback.StatePaused,
		Shuffle: m.deps.Playback.Shuffle(),
		Repeat:  m.deps.Playback.Repeat(),
		Volume:  m.deps.Player.Volume(),
		Muted:   m.deps.Player.Muted(),
	}
	if track != nil {
		ps.Title = track.Title
		ps.Artist = track.Artist
		ps.Album = track.Album
		ps.Starred = track.Starred
		ps.Position = m.deps.Playback.Position()
		ps.Duration = m.deps.Playback.Duration()
	}
	return ps
}

// joinColumns places two blocks side by side, padding the left block
// to leftWidth so the right column lines up.
func joinColumns(left, right string, leftWidth int) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	n := max(len(leftLines), len(rightLines))
	var b strings.Builder
	for i := range n {
		if i > 0 {
			b.WriteString("\n")
		}
		var line string
		if i < len(leftLines) {
			line = leftLines[i]
		}
		pad := leftWidth - lipgloss.Width(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString(line)
		if i < len(rightLines) {
			b.WriteString(rightLines[i])
		}
	}
	return b.String()
}
