package toolkit

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/logger"
	"go.trai.ch/extbuild/internal/adapters/shell"
	"go.trai.ch/extbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.locator"

func init() {
	graft.Register(graft.Node[ports.ToolchainLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolchainLocator, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocator(runner, log), nil
		},
	})
}
