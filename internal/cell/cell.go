// Package cell holds compiled pipelines behind a uniform accessor. A
// WatchingCell rebuilds its pipeline when the shader files it was built from
// change on disk. A StaticCell is built once from bytes and never changes.
package cell

// Cell gives access to the current pipeline and the factory that built it.
type Cell[A, F any] interface {
	// Pipeline returns the current pipeline. For a watching cell this may
	// rebuild it first.
	Pipeline() A
	// Factory returns the factory pipelines are built with.
	Factory() F
}

// Handle is a Cell that owns resources and must be closed.
type Handle[A, F any] interface {
	Cell[A, F]
	Close() error
}
