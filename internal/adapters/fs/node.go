package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/core/ports"
)

const (
	// HasherNodeID identifies the hasher node.
	HasherNodeID graft.ID = "adapter.hasher"
	// ResolverNodeID identifies the source resolver node.
	ResolverNodeID graft.ID = "adapter.resolver"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(NewWalker()), nil
		},
	})

	graft.Register(graft.Node[ports.SourceResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SourceResolver, error) {
			return NewResolver(), nil
		},
	})
}
