// Package styles provides shared lipgloss styles for CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Old and New mirror the accent colors used on the canvas.
	Old = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	New = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)

	Header  = lipgloss.NewStyle().Bold(true).Underline(true)
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
