package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("249"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	// buttonFocusedStyle marks the button as the Enter target.
	buttonFocusedStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Bold(true)

	buttonDisabledStyle = buttonStyle.
				Foreground(lipgloss.Color("240")).
				Background(lipgloss.Color("235"))

	outputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
)
