package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Filter    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Search    lipgloss.Style
	Focused   lipgloss.Style
}

func defaultStyles() styles {
	border := lipgloss.Color("240")
	primary := lipgloss.Color("63")

	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(primary).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(primary).Padding(0, 1),
		Filter:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Search:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1),
	}
}
