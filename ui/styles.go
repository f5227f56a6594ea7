package ui

import "github.com/charmbracelet/lipgloss"

const (
	glyphAlive = "█"
	glyphDead  = "·"
)

var (
	boardFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466"))

	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	aliveCell  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	deadCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorCell = lipgloss.NewStyle().Reverse(true)

	statusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	statusStopped = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	metricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	metricValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))

	keyHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	errorMsg = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)
