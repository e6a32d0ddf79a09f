// Package fs provides filesystem access for shader sources.
package fs

import (
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
)

var _ ports.PathResolver = (*Resolver)(nil)

// Resolver canonicalizes paths against the local filesystem.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve makes path absolute and resolves its symlinks.
func (r *Resolver) Resolve(path string) (domain.WatchedResource, error) {
	return domain.NewWatchedResource(path)
}
