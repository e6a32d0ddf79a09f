package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shadercell/internal/ui/style"
)

// swapHighlightFrames is how many frames a fresh swap stays highlighted.
const swapHighlightFrames = 30

// View renders the pipeline list next to the log pane.
func (m *Model) View() string {
	if m.Viewport.Height == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.pipelineList(),
		m.logPane(),
	)
}

func (m *Model) pipelineList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("PIPELINES") + "\n\n")

	end := len(m.Pipelines)
	if m.ListHeight > 0 {
		end = min(end, m.ListOffset+m.ListHeight)
	}
	for i := m.ListOffset; i < end; i++ {
		s.WriteString(m.renderRow(i, m.Pipelines[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderRow(index int, node *PipelineNode) string {
	icon, rowStyle := style.Check, pipelineOKStyle
	switch {
	case node.Err != nil:
		icon, rowStyle = style.Cross, pipelineErrorStyle
	case node.Generation > 0 && m.Frames-node.SwappedAt < swapHighlightFrames:
		icon, rowStyle = style.Reload, pipelineSwappedStyle
	}

	info := fmt.Sprintf("#%d %s", node.Generation, node.Digest)
	if node.Failures > 0 {
		info += fmt.Sprintf(" failed:%d", node.Failures)
	}
	line := fmt.Sprintf("%s %s %s", icon, node.Name, mutedStyle.Render(info))
	if index == m.SelectedIdx {
		return selectedStyle.Render("> ") + rowStyle.Render(line)
	}
	return "  " + rowStyle.Render(line)
}

func (m *Model) logPane() string {
	header := titleStyle.Render("LOG")
	if node := m.selected(); node != nil {
		header = titleStyle.Render("LOG: " + node.Name)
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.Viewport.View(),
		),
	)
}
