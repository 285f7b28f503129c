// Package toolkit discovers GPU toolkit and interpreter paths on the host.
package toolkit

import (
	"context"
	"sync"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.ToolchainLocator = (*Locator)(nil)

// Locator resolves backend toolchains. Successful discovery results are
// memoized for the lifetime of the Locator, so repeated builds pay for the
// probes once. Failed probes are not cached; a later call retries them.
type Locator struct {
	runner ports.Runner
	logger ports.Logger

	cudaMu   sync.Mutex
	cudaDirs []string

	pyMu sync.Mutex
	py   *pythonInfo
}

// NewLocator creates a new Locator.
func NewLocator(runner ports.Runner, logger ports.Logger) *Locator {
	return &Locator{
		runner: runner,
		logger: logger,
	}
}

// Locate resolves the toolchain for the given backend. Toolkit and
// interpreter probes run concurrently; both are required.
func (l *Locator) Locate(ctx context.Context, backend domain.Backend) (*domain.Toolchain, error) {
	tc := &domain.Toolchain{Backend: backend}

	var libDirs, includeDirs []string
	var libraries []string

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		switch backend {
		case domain.BackendCUDA:
			dirs, err := l.libcudaDirs(gctx)
			if err != nil {
				return err
			}
			libDirs = dirs
			includeDirs = []string{cudaIncludeDir()}
			libraries = []string{"cuda"}
			return nil
		case domain.BackendROCm:
			root := rocmPathDir()
			libDirs = []string{rocmLibDir(root)}
			includeDirs = []string{rocmIncludeDir(root)}
			libraries = []string{"amdhip64"}
			return nil
		default:
			return zerr.With(zerr.Wrap(domain.ErrUnknownBackend, "cannot locate toolchain"), "backend", string(backend))
		}
	})

	g.Go(func() error {
		py, err := l.pythonInfo(gctx)
		if err != nil {
			return err
		}
		tc.Python = py.Interpreter
		tc.ExtSuffix = py.ExtSuffix
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	py, _ := l.pythonInfo(ctx) // memoized, cannot fail after g.Wait
	tc.IncludeDirs = append(includeDirs, py.IncludeDir)
	tc.LibraryDirs = append(libDirs, py.LibDirs...)
	tc.Libraries = libraries

	return tc, nil
}
