// Package builder implements the extension module build pipeline.
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/extbuild/internal/adapters/cc"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder compiles extension module jobs into loadable shared objects.
type Builder struct {
	locator   ports.ToolchainLocator
	detector  ports.CompilerDetector
	runner    ports.Runner
	resolver  ports.SourceResolver
	hasher    ports.Hasher
	store     ports.BuildInfoStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(
	locator ports.ToolchainLocator,
	detector ports.CompilerDetector,
	runner ports.Runner,
	resolver ports.SourceResolver,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Builder {
	return &Builder{
		locator:   locator,
		detector:  detector,
		runner:    runner,
		resolver:  resolver,
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Build compiles the job and returns the path of the produced shared object.
// A job whose inputs are unchanged since the last recorded build is skipped.
func (b *Builder) Build(ctx context.Context, job *domain.Job) (string, error) {
	ctx, vertex := b.telemetry.Record(ctx, job.Name)
	ctx = ports.ContextWithVertex(ctx, vertex)

	artifact, cached, err := b.build(ctx, job)
	if cached {
		vertex.Cached()
	}
	vertex.Complete(err)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "job failed"), "job", job.Name)
	}
	return artifact, nil
}

func (b *Builder) build(ctx context.Context, job *domain.Job) (string, bool, error) {
	// 1. Resolve the source file. The compile and fallback commands run
	// with their working directory set to the source directory, so every
	// path baked into them has to be absolute.
	src, err := b.resolver.ResolveSource(job.Source, ".")
	if err != nil {
		return "", false, err
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return "", false, zerr.Wrap(err, "failed to resolve source path")
	}
	resolved := *job
	resolved.Source = src
	if resolved.SrcDir != "" {
		resolved.SrcDir, err = filepath.Abs(resolved.SrcDir)
		if err != nil {
			return "", false, zerr.Wrap(err, "failed to resolve source directory")
		}
	}
	resolved.Normalize()

	// 2. Resolve the toolchain and the compiler.
	tc, err := b.locator.Locate(ctx, resolved.Backend)
	if err != nil {
		return "", false, err
	}
	compiler, err := b.detector.Detect(ctx)
	if err != nil {
		return "", false, err
	}

	out := filepath.Join(resolved.SrcDir, resolved.Name+tc.ExtSuffix)

	// 3. Calculate the input hash and check the cache.
	inputHash, err := b.hasher.ComputeInputHash(&resolved, tc, compiler)
	if err != nil {
		return "", false, err
	}
	if artifact, ok := b.checkCacheHit(resolved.Name, inputHash); ok {
		b.logger.Info(fmt.Sprintf("%s is up to date", resolved.Name))
		return artifact, true, nil
	}

	// 4. Compile (cache miss).
	if err := b.compile(ctx, compiler, &resolved, tc, out); err != nil {
		return "", false, err
	}
	if _, err := os.Stat(out); err != nil {
		return "", false, zerr.With(zerr.Wrap(domain.ErrArtifactMissing, "compiler exited cleanly"), "artifact", out)
	}

	// 5. Update the cache.
	info := domain.BuildInfo{
		JobName:   resolved.Name,
		InputHash: inputHash,
		Artifact:  out,
		Timestamp: time.Now(),
	}
	if err := b.store.Put(info); err != nil {
		return "", false, zerr.Wrap(err, "failed to store build info")
	}
	return out, false, nil
}

func (b *Builder) checkCacheHit(jobName, inputHash string) (string, bool) {
	info, err := b.store.Get(jobName)
	if err != nil || info == nil || info.InputHash != inputHash {
		return "", false
	}
	// Stale entries whose artifact was removed are rebuilt.
	if _, err := os.Stat(info.Artifact); err != nil {
		return "", false
	}
	return info.Artifact, true
}

// compile runs the compiler directly and, if that fails, retries through the
// interpreter's packaging toolchain.
func (b *Builder) compile(ctx context.Context, compiler string, job *domain.Job, tc *domain.Toolchain, out string) error {
	cmd := cc.Command(compiler, job, tc, out)
	b.logger.Info(fmt.Sprintf("compiling %s with %s", job.Name, compiler))
	directErr := b.runner.Run(ctx, cmd)
	if directErr == nil {
		return nil
	}

	b.logger.Warn(fmt.Sprintf("%s: direct compilation failed, retrying via the packaging toolchain", job.Name))
	fallbackErr := b.fallbackBuild(ctx, job, tc)
	if fallbackErr == nil {
		return nil
	}
	return errors.Join(domain.ErrBuildFailed, directErr, fallbackErr)
}
