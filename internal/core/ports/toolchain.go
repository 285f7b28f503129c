package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// ToolchainLocator resolves the toolkit and interpreter paths needed to
// compile an extension module for a backend. Implementations memoize
// discovery results for the lifetime of the process.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainLocator interface {
	// Locate returns the resolved toolchain for the given backend.
	Locate(ctx context.Context, backend domain.Backend) (*domain.Toolchain, error)
}

// CompilerDetector finds a usable C compiler on the host.
type CompilerDetector interface {
	// Detect returns the compiler executable name or path.
	// The CC environment variable takes precedence over PATH lookup.
	Detect(ctx context.Context) (string, error)
}
