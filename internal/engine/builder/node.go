package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/cas"
	"go.trai.ch/extbuild/internal/adapters/cc"
	"go.trai.ch/extbuild/internal/adapters/fs"
	"go.trai.ch/extbuild/internal/adapters/logger"
	"go.trai.ch/extbuild/internal/adapters/shell"
	"go.trai.ch/extbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/extbuild/internal/adapters/toolkit"
	"go.trai.ch/extbuild/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolkit.NodeID,
			cc.NodeID,
			shell.NodeID,
			fs.HasherNodeID,
			fs.ResolverNodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			locator, err := graft.Dep[ports.ToolchainLocator](ctx)
			if err != nil {
				return nil, err
			}

			detector, err := graft.Dep[ports.CompilerDetector](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.SourceResolver](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(
				locator,
				detector,
				runner,
				resolver,
				hasher,
				store,
				telemetry,
				log,
			), nil
		},
	})
}
