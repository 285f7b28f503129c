package cc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[ports.CompilerDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.CompilerDetector, error) {
			return NewDetector(), nil
		},
	})
}
