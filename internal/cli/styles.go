package cli

import "github.com/charmbracelet/lipgloss"

type cliStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
}

var styles = defaultStyles()

func defaultStyles() cliStyles {
	accent := lipgloss.Color("#00ff41")
	muted := lipgloss.Color("#666666")
	text := lipgloss.Color("#e0e0e0")

	return cliStyles{
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(text).
			Width(14),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Success: lipgloss.NewStyle().
			Foreground(accent),

		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaa00")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true),
	}
}

func field(label, value string) string {
	return styles.Label.Render(label) + value
}
