package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	nameStyle     = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	skeletonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	planStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(32)
	highlightedPlanStyle = planStyle.
				BorderForeground(lipgloss.Color("42"))
)
