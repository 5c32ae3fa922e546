package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	Label   lipgloss.Style
	Focused lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Metric  lipgloss.Style
	Value   lipgloss.Style
}

func DefaultTheme() Theme {
	card := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card:     card,

		Label:   lipgloss.NewStyle().Width(18),
		Focused: lipgloss.NewStyle().Width(18).Bold(true).Foreground(lipgloss.Color("63")),

		Success: card.BorderForeground(lipgloss.Color("42")),
		Error:   card.BorderForeground(lipgloss.Color("203")),
		Metric: lipgloss.NewStyle().
			Padding(0, 2).
			Width(24).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		Value: lipgloss.NewStyle().Bold(true),
	}
}
