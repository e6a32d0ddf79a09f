package ports

import "go.trai.ch/shadercell/internal/core/domain"

// ArtifactStore persists compiled pipelines.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Put stores the pipeline and returns the location it was written to.
	Put(p *domain.Pipeline) (string, error)

	// Get retrieves a pipeline by digest.
	// Returns nil, nil if not found.
	Get(digest uint64) (*domain.Pipeline, error)
}
