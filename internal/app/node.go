package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/extbuild/internal/adapters/cc"     //nolint:depguard // Wired in app layer
	"go.trai.ch/extbuild/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/extbuild/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/extbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/extbuild/internal/adapters/toolkit" //nolint:depguard // Wired in app layer
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/extbuild/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			builder.NodeID,
			toolkit.NodeID,
			cc.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			b, err := graft.Dep[*builder.Builder](ctx)
			if err != nil {
				return nil, err
			}

			locator, err := graft.Dep[ports.ToolchainLocator](ctx)
			if err != nil {
				return nil, err
			}

			detector, err := graft.Dep[ports.CompilerDetector](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, b, locator, detector, store, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:       application,
				Logger:    log,
				Telemetry: telemetry,
			}, nil
		},
	})
}
