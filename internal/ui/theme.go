package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette. Lipgloss degrades these to plain text when
// stdout is not a terminal.
var (
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorYellow = lipgloss.Color("#f9e2af")
	colorRed    = lipgloss.Color("#f38ba8")
	colorMauve  = lipgloss.Color("#cba6f7")
	colorMuted  = lipgloss.Color("#5a6278")
)

var (
	stylePhase  = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	styleCopy   = lipgloss.NewStyle().Foreground(colorGreen)
	styleDelete = lipgloss.NewStyle().Foreground(colorYellow)
	styleFail   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleSkip   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSize   = lipgloss.NewStyle().Foreground(colorMuted)
)
