package cli

import "github.com/charmbracelet/lipgloss"

// Styles for command output. Colours degrade to plain text on
// terminals without colour support.
var (
	// stylePath renders file paths.
	stylePath = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// styleModified renders paths with uncommitted changes.
	styleModified = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// styleClean renders the no-changes notice.
	styleClean = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)
