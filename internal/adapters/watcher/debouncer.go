// Package watcher implements the filesystem watch service on top of fsnotify.
package watcher

import (
	"slices"
	"strings"
	"sync"
	"time"
	"unique"

	"go.trai.ch/shadercell/internal/core/ports"
)

// Debouncer coalesces rapid file system events into batches. Within a batch
// each path appears once, carrying the strongest operation seen for it.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)
	stopped  bool
	inflight sync.WaitGroup
}

// NewDebouncer creates a debouncer that calls callback once the window has
// passed without a new event.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records an event for path and restarts the quiet window.
func (d *Debouncer) Add(path string, op ports.WatchOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	handle := unique.Make(path)
	if prev, ok := d.pending[handle]; !ok || strength(op) > strength(prev) {
		d.pending[handle] = op
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	batch := d.drain()
	d.timer = nil
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	if d.callback != nil {
		d.callback(batch)
	}
}

// Stop discards pending events and waits for any running callback. No
// callback starts after Stop returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
	d.mu.Unlock()

	d.inflight.Wait()
}

// drain must be called with mu held.
func (d *Debouncer) drain() []ports.WatchEvent {
	batch := make([]ports.WatchEvent, 0, len(d.pending))
	for handle, op := range d.pending {
		batch = append(batch, ports.WatchEvent{Path: handle.Value(), Operation: op})
	}
	clear(d.pending)

	slices.SortFunc(batch, func(a, b ports.WatchEvent) int {
		return strings.Compare(a.Path, b.Path)
	})
	return batch
}

// strength orders operations: create, then write, then the rest.
func strength(op ports.WatchOp) int {
	switch op {
	case ports.OpCreate:
		return 3
	case ports.OpWrite:
		return 2
	case ports.OpRemove, ports.OpRename:
		return 1
	default:
		return 0
	}
}
