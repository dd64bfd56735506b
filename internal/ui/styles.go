package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, running state
	ColorHighlight = "205" // Magenta - for card borders, position
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorWarning   = "208" // Orange - for paused state
)

// Styles contains shared style definitions for the header and empty states.
var Styles = struct {
	Title    lipgloss.Style // Bold accent color - deck title
	Position lipgloss.Style // Current card position, e.g. "2/5"
	Running  lipgloss.Style // Cycle running indicator
	Paused   lipgloss.Style // Cycle paused indicator
	Empty    lipgloss.Style // Empty state text (muted, italic)
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Position: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Running: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Paused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}
