package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shadercell/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	// Pane Styles.
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Muted).
			MarginRight(1).
			PaddingRight(1)

	logStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	// Pipeline Status Styles.
	pipelineOKStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	pipelineSwappedStyle = lipgloss.NewStyle().
				Foreground(style.Accent).
				Bold(true)

	pipelineErrorStyle = lipgloss.NewStyle().
				Foreground(style.Red)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Muted)

	// Selection Style.
	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Accent).
			Bold(true)

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(colorWhite)
)
