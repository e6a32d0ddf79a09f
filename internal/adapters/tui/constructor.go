package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
)

// NewModel creates a dashboard for the named pipelines. frame is called once
// per interval; logs, if set, feeds the log pane.
func NewModel(names []string, frame FrameFunc, logs *Recorder, interval time.Duration) *Model {
	pipelines := make([]*PipelineNode, len(names))
	for i, name := range names {
		pipelines[i] = &PipelineNode{Name: name}
	}
	return &Model{
		Pipelines: pipelines,
		Viewport:  viewport.New(0, 0),
		frame:     frame,
		logs:      logs,
		interval:  interval,
	}
}

// WithDisableTick stops the model from scheduling frames on its own. Frames
// then only run on MsgFrame messages sent by the caller.
func (m *Model) WithDisableTick() *Model {
	m.disableTick = true
	return m
}
