package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	TileStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center)

	HiddenTileStyle = TileStyle.
			Foreground(lipgloss.Color("#626262"))

	SelectedTileStyle = TileStyle.
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true)

	MatchedTileStyle = TileStyle.
				Foreground(lipgloss.Color("#96CEB4")).
				Bold(true)

	FailedTileStyle = TileStyle.
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
