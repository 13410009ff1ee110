// Package console renders agent progress to the user's terminal.
package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color scheme - each kind of line keeps one consistent color.
var (
	// Structural / metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - iteration markers, metadata

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - task header

	// Planned commands - Blue
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")) // Blue

	// Explanations - default/white
	explainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")) // White

	// Privilege prompts - Orange
	sudoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")) // Orange

	// Outcomes
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow

	divider = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(strings.Repeat("━", 60))
)
