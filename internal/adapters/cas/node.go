package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BuildInfoStore, error) {
			return NewStore(DefaultPath)
		},
	})
}
