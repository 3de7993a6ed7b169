package report

import "charm.land/lipgloss/v2"

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var (
	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(10)

	value = lipgloss.NewStyle().
		Bold(true)

	ok = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	header = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	dim = lipgloss.NewStyle().
		Foreground(TextDim)

	card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)
