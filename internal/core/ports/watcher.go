package ports

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed away.
	OpRename
	// OpOther covers attribute changes and anything else.
	OpOther
)

// Modifies reports whether the operation can have changed file contents.
func (o WatchOp) Modifies() bool {
	return o == OpCreate || o == OpWrite
}

// String implements fmt.Stringer.
func (o WatchOp) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "other"
	}
}

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the absolute path of the file or directory that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// Watcher defines the interface for watching file system changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch registers a directory, non-recursively. Registering the same
	// directory twice is a no-op.
	Watch(dir string) error
	// Events returns the channel events are delivered on. It is closed
	// once the watcher has stopped.
	Events() <-chan WatchEvent
	// Stop stops the watcher and releases all resources.
	Stop() error
}

// WatcherFactory creates a new, independent Watcher.
type WatcherFactory func() (Watcher, error)
