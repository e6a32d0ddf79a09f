package naga

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the pipeline factory Graft node.
const NodeID graft.ID = "adapter.naga"

// DefaultMemoTTL bounds how long the shared factory keeps a compiled stage.
// Edited shaders leave stale variants behind during long watch sessions.
const DefaultMemoTTL = 10 * time.Minute

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Factory, error) {
			return New(WithMemoTTL(DefaultMemoTTL)), nil
		},
	})
}
