package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle renders bold cells.
	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	// StatusStyle is used for messages printed outside the UI.
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// ErrorStyle is used for fatal errors printed outside the UI.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	// SuccessStyle is used for successful startup checks.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))
)
