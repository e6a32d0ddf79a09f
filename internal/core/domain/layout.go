package domain

import (
	"path/filepath"
	"time"
)

const (
	// WorkDirName is the name of the internal workspace directory.
	WorkDirName = ".shadercell"

	// StoreDirName is the name of the compiled artifact store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the pipeline configuration file.
	ConfigFileName = "shadercell.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DefaultDebounceWindow is how long the watch service waits for a path
	// to go quiet before reporting it.
	DefaultDebounceWindow = 100 * time.Millisecond

	// DefaultFrameInterval is the pacing of the watch command's frame loop.
	DefaultFrameInterval = 16 * time.Millisecond
)

// DefaultStorePath returns the default path for the artifact store.
// It joins .shadercell and store.
func DefaultStorePath() string {
	return filepath.Join(WorkDirName, StoreDirName)
}

// InstrumentationName names the tracer used for rebuild spans.
const InstrumentationName = "go.trai.ch/shadercell"
