package playerbar

import "github.com/charmbracelet/lipgloss"

const (
	playSymbol    = "▶" // ▶
	pauseSymbol   = "⏸" // ⏸
	starSymbol    = "★" // ★
	shuffleSymbol = "⇄" // ⇄
	repeatSymbol  = "⟲" // ⟲
	muteSymbol    = "\U0001F507"
)

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	progressTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))
)
