package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
)

// NodeID is the unique identifier for the artifact store Graft node.
const NodeID graft.ID = "adapter.cas"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactStore, error) {
			return NewStore(domain.DefaultStorePath()), nil
		},
	})
}
