package watcher

import (
	"path/filepath"
	"sync"
	"time"
	"unique"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const defaultEventBuffer = 100

// Option configures a Watcher.
type Option func(*options)

type options struct {
	window time.Duration
	buffer int
	logger ports.Logger
}

// WithDebounce sets the quiet window events are coalesced over.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.window = d
		}
	}
}

// WithBuffer sets the capacity of the events channel.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.buffer = n
		}
	}
}

// WithLogger reports fsnotify errors through l. Without it they are dropped.
func WithLogger(l ports.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Watcher delivers debounced, non-recursive directory notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    ports.Logger
	events    chan ports.WatchEvent
	done      chan struct{}
	wg        sync.WaitGroup

	mu   sync.Mutex
	dirs map[unique.Handle[string]]struct{}

	stopOnce sync.Once
	stopErr  error
}

// New creates a watcher and starts its background goroutine.
func New(opts ...Option) (*Watcher, error) {
	o := options{
		window: domain.DefaultDebounceWindow,
		buffer: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(&o)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domain.Because(domain.ErrWatcherCreateFailed, err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		logger:    o.logger,
		events:    make(chan ports.WatchEvent, o.buffer),
		done:      make(chan struct{}),
		dirs:      make(map[unique.Handle[string]]struct{}),
	}
	w.debouncer = NewDebouncer(o.window, w.emit)

	w.wg.Add(1)
	go w.processEvents()

	return w, nil
}

// Watch registers dir. Directories already registered are ignored.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	handle := unique.Make(dir)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[handle]; ok {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.With(domain.Because(domain.ErrWatchRegistrationFailed, err), "dir", dir)
	}
	w.dirs[handle] = struct{}{}
	return nil
}

// Events returns the channel debounced events are delivered on. It is closed
// by Stop.
func (w *Watcher) Events() <-chan ports.WatchEvent {
	return w.events
}

// Stop shuts the watcher down and waits for its goroutine. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsWatcher.Close()
		w.wg.Wait()
		w.debouncer.Stop()
		close(w.events)
	})
	return w.stopErr
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.debouncer.Add(event.Name, convertOp(event.Op))
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("filesystem watch error", "error", err)
			}
		}
	}
}

// emit runs on the debouncer's goroutine. It gives up once the watcher stops.
func (w *Watcher) emit(batch []ports.WatchEvent) {
	for _, event := range batch {
		select {
		case w.events <- event:
		case <-w.done:
			return
		}
	}
}

func convertOp(op fsnotify.Op) ports.WatchOp {
	switch {
	case op.Has(fsnotify.Create):
		return ports.OpCreate
	case op.Has(fsnotify.Write):
		return ports.OpWrite
	case op.Has(fsnotify.Remove):
		return ports.OpRemove
	case op.Has(fsnotify.Rename):
		return ports.OpRename
	default:
		return ports.OpOther
	}
}
