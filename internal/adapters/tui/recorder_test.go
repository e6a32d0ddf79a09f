package tui_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadercell/internal/adapters/tui"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := tui.NewRecorder(3)
	r.Debug("dropped")
	r.Info("pipeline reloaded", "path", "/tmp/a.wgsl", "generation", 2)
	r.Warn("failed to stop watcher")
	r.Error(nil)
	r.Error(errors.New("compile failed"))

	lines := r.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "pipeline reloaded path=/tmp/a.wgsl generation=2")
	assert.Contains(t, lines[1], "! failed to stop watcher")
	assert.Contains(t, lines[2], "✗ compile failed")

	for i := range 5 {
		r.Info(fmt.Sprintf("line %d", i))
	}
	lines = r.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 2")
	assert.Contains(t, lines[2], "line 4")
}

func TestRecorder_DefaultLimit(t *testing.T) {
	t.Parallel()

	r := tui.NewRecorder(0)
	for range tui.DefaultLogLines + 10 {
		r.Info("x")
	}
	assert.Len(t, r.Lines(), tui.DefaultLogLines)
}
