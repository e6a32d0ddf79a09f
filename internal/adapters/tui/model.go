// Package tui provides a live dashboard for watched pipelines.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	listWidthRatio     = 0.35
	logPaneBorderWidth = 4
	listInfoHeight     = 3
)

// Status is the state of one pipeline after a frame.
type Status struct {
	Generation uint64
	Digest     string
	Err        error
	// Failures counts rebuilds that kept the previous pipeline.
	Failures uint64
}

// FrameFunc accesses every pipeline once and reports their states in a
// fixed order. It always runs on the program's event loop.
type FrameFunc func() []Status

// PipelineNode represents a single pipeline in the UI list.
type PipelineNode struct {
	Name       string
	Generation uint64
	Digest     string
	Err        error
	Failures   uint64
	// SwappedAt is the frame the current generation was first seen at.
	SwappedAt int
}

// MsgFrame triggers one frame.
type MsgFrame time.Time

// Model represents the main TUI state.
type Model struct {
	Pipelines   []*PipelineNode
	Viewport    viewport.Model
	Frames      int
	SelectedIdx int
	ListOffset  int
	ListHeight  int

	frame       FrameFunc
	logs        *Recorder
	interval    time.Duration
	disableTick bool
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.disableTick {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return MsgFrame(t) })
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selected() *PipelineNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Pipelines) {
		return m.Pipelines[m.SelectedIdx]
	}
	return nil
}

// updateLogPane shows the selected pipeline's error above the recent log.
func (m *Model) updateLogPane() {
	var b strings.Builder
	if node := m.selected(); node != nil && node.Err != nil {
		b.WriteString(pipelineErrorStyle.Render(node.Err.Error()))
		b.WriteString("\n\n")
	}
	if m.logs != nil {
		b.WriteString(strings.Join(m.logs.Lines(), "\n"))
	}
	m.Viewport.SetContent(b.String())
	m.Viewport.GotoBottom()
}

// Step runs one frame: every pipeline is accessed and the list updated.
func (m *Model) Step() {
	m.Frames++
	if m.frame == nil {
		return
	}
	for i, status := range m.frame() {
		if i >= len(m.Pipelines) {
			break
		}
		node := m.Pipelines[i]
		if status.Generation != node.Generation {
			node.SwappedAt = m.Frames
		}
		node.Generation = status.Generation
		node.Digest = status.Digest
		node.Err = status.Err
		node.Failures = status.Failures
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.ensureVisible()
				m.updateLogPane()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Pipelines)-1 {
				m.SelectedIdx++
				m.ensureVisible()
				m.updateLogPane()
			}
		}

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * listWidthRatio)
		m.Viewport.Width = msg.Width - listWidth - logPaneBorderWidth
		m.Viewport.Height = msg.Height - 2
		m.ListHeight = msg.Height - listInfoHeight
		m.ensureVisible()
		m.updateLogPane()

	case MsgFrame:
		m.Step()
		m.updateLogPane()
		return m, m.tick()
	}

	return m, nil
}
