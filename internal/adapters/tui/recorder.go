package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultLogLines bounds the lines kept by a Recorder.
const DefaultLogLines = 500

// Recorder is a ports.Logger that keeps the most recent lines in memory so
// the dashboard can show them instead of writing over the screen.
type Recorder struct {
	mu    sync.Mutex
	lines []string
	limit int
	now   func() time.Time
}

// NewRecorder creates a Recorder keeping at most limit lines.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultLogLines
	}
	return &Recorder{limit: limit, now: time.Now}
}

// Debug is discarded.
func (r *Recorder) Debug(string, ...any) {}

// Info records an informational line.
func (r *Recorder) Info(msg string, args ...any) {
	r.record("", msg, args)
}

// Warn records a warning line.
func (r *Recorder) Warn(msg string, args ...any) {
	r.record("! ", msg, args)
}

// Error records err.
func (r *Recorder) Error(err error) {
	if err == nil {
		return
	}
	r.record("✗ ", err.Error(), nil)
}

// Lines returns a copy of the recorded lines, oldest first.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *Recorder) record(prefix, msg string, args []any) {
	var b strings.Builder
	b.WriteString(r.now().Format("15:04:05 "))
	b.WriteString(prefix)
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		_, _ = fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, b.String())
	if over := len(r.lines) - r.limit; over > 0 {
		r.lines = r.lines[over:]
	}
}
