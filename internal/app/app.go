// Package app implements the application layer for extbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/extbuild/internal/engine/builder"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *builder.Builder
	locator      ports.ToolchainLocator
	detector     ports.CompilerDetector
	store        ports.BuildInfoStore
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	b *builder.Builder,
	locator ports.ToolchainLocator,
	detector ports.CompilerDetector,
	store ports.BuildInfoStore,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      b,
		locator:      locator,
		detector:     detector,
		store:        store,
		logger:       logger,
	}
}

// Run builds the named jobs from the manifest at configPath. With no names
// given, every job in the manifest is built, in name order. Jobs that fail
// do not stop the remaining ones; all failures are reported together.
func (a *App) Run(ctx context.Context, configPath string, jobNames []string) error {
	manifest, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(jobNames) == 0 {
		jobNames = manifest.JobNames()
		sort.Strings(jobNames)
	}

	var errs error
	for _, name := range jobNames {
		job, err := manifest.Job(name)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		artifact, err := a.builder.Build(ctx, job)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info(fmt.Sprintf("built %s", artifact))
	}
	return errs
}

// BuildFile compiles a single source file without consulting a manifest and
// returns the artifact path.
func (a *App) BuildFile(ctx context.Context, job *domain.Job) (string, error) {
	if job.Name == "" || job.Source == "" {
		return "", zerr.New("a module name and a source file are required")
	}
	job.Normalize()
	return a.builder.Build(ctx, job)
}

// Probe reports what toolkit discovery finds on this host: the C compiler
// and, per backend, the header and library directories and the interpreter.
// Backends that cannot be resolved are reported, not treated as failures.
func (a *App) Probe(ctx context.Context, w io.Writer) error {
	compiler, err := a.detector.Detect(ctx)
	if err != nil {
		fmt.Fprintln(w, "compiler: not found")
	} else {
		fmt.Fprintf(w, "compiler: %s\n", compiler)
	}

	for _, backend := range []domain.Backend{domain.BackendCUDA, domain.BackendROCm} {
		tc, err := a.locator.Locate(ctx, backend)
		if err != nil {
			fmt.Fprintf(w, "%s: unavailable (%s)\n", backend, err)
			continue
		}
		fmt.Fprintf(w, "%s:\n", backend)
		fmt.Fprintf(w, "  include: %s\n", strings.Join(tc.IncludeDirs, " "))
		fmt.Fprintf(w, "  lib:     %s\n", strings.Join(tc.LibraryDirs, " "))
		fmt.Fprintf(w, "  python:  %s (%s)\n", tc.Python, tc.ExtSuffix)
	}
	return nil
}

// Clean removes all recorded build state, forcing the next run to rebuild.
func (a *App) Clean() error {
	return a.store.Clear()
}
