package ports

import (
	"context"

	"go.trai.ch/shadercell/internal/core/domain"
)

// PathResolver canonicalizes resource paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PathResolver interface {
	// Resolve canonicalizes path. It fails with a domain.ErrConfig error when
	// the path is empty or does not exist.
	Resolve(path string) (domain.WatchedResource, error)
}

// SourceReader reads resource contents.
type SourceReader interface {
	// ReadAll returns the contents of every resource, in order. It fails
	// with a domain.ErrIO error if any resource is unreadable.
	ReadAll(ctx context.Context, resources []domain.WatchedResource) ([][]byte, error)
}
