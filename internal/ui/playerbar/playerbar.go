// Package playerbar renders the persistent bottom playback bar.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crest/internal/ui/render"
)

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Title    string
	Artist   string
	Album    string
	Position time.Duration
	Duration time.Duration
	Shuffle  bool
	Repeat   bool
	Volume   float64
	Muted    bool
	Starred  bool
}

// Height is the rendered height: top border, content, bottom border.
const Height = 3

// Render returns the player bar string for the given width, or empty
// when nothing is playing.
func Render(s State, width int) string {
	if !s.Playing && !s.Paused {
		return ""
	}

	innerWidth := max(width-4, 0)

	status := playSymbol
	if s.Paused {
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	if s.Starred {
		title = starSymbol + " " + title
	}

	var infoParts []string
	if s.Artist != "" {
		infoParts = append(infoParts, s.Artist)
	}
	if s.Album != "" {
		infoParts = append(infoParts, s.Album)
	}
	info := strings.Join(infoParts, " · ")

	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	right := modeIndicators(s)
	if right != "" {
		right += "  "
	}
	right += progressTimeStyle.Render(timeStr)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	statusPart := status + "  "
	fixed := lipgloss.Width(statusPart) + lipgloss.Width(right) + sepWidth

	minBarWidth := 10
	available := innerWidth - fixed - minBarWidth - sepWidth

	var left string
	titleWidth := lipgloss.Width(title)
	switch {
	case titleWidth+sepWidth+lipgloss.Width(info) <= available:
		left = titleStyle.Render(title) + separator + artistStyle.Render(info)
	case titleWidth <= available:
		left = titleStyle.Render(title)
	default:
		left = titleStyle.Render(render.Truncate(title, max(available, 8)))
	}

	barWidth := max(innerWidth-lipgloss.Width(statusPart)-lipgloss.Width(left)-lipgloss.Width(right)-sepWidth*2, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	bar := progressFilledStyle.Render(strings.Repeat("━", filled)) +
		progressEmptyStyle.Render(strings.Repeat("─", barWidth-filled))

	content := statusPart + left + separator + bar + separator + right
	return barStyle.Padding(0, 1).Width(width - 2).Render(content)
}

func modeIndicators(s State) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, shuffleSymbol)
	}
	if s.Repeat {
		parts = append(parts, repeatSymbol)
	}
	if s.Muted {
		parts = append(parts, muteSymbol)
	} else {
		parts = append(parts, fmt.Sprintf("%d%%", int(s.Volume*100)))
	}
	return modeStyle.Render(strings.Join(parts, " "))
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}
