package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorCyan   = lipgloss.Color("#06b6d4")
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorRed    = lipgloss.Color("#ef4444")

	// Styles
	infoStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)
