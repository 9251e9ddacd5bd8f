package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15202b")).
			Background(lipgloss.Color("#5fafff")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5fafff")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#d70000", Dark: "#ff5f5f"}).
			Render

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E")).
			Render

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#005fd7")).
			Padding(0, 1)

	modelBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#15202b", Dark: "#e4e4e4"}).
			Background(lipgloss.AdaptiveColor{Light: "#d0d0d0", Dark: "#3a3a3a"}).
			Padding(0, 1)
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
