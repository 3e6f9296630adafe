package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"converted": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"done":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"copied":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"available": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"probing":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"resolving":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"converting": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Skipped / warning
		"skipped": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"exists":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"missing": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"failed":      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"error":       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"unsupported": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"no tool":     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		// Pending
		"pending":   lipgloss.NewStyle().Faint(true),
		"cancelled": lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
