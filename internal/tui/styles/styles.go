package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true).
			Underline(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorMuted))

	UsernameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary)).
			Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	LikedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent))

	CountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	SelectedStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(ColorPrimary)).
			PaddingLeft(1)

	UnselectedStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)).
			Bold(true)
)

// Selection returns the item block style for the given selection state.
func Selection(selected bool) lipgloss.Style {
	if selected {
		return SelectedStyle
	}

	return UnselectedStyle
}
