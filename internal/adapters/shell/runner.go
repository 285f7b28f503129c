// Package shell provides the subprocess runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the command, streaming stdout and stderr to the logger line
// by line. The command's environment entries override the inherited process
// environment.
//
// A telemetry vertex carried by the context additionally receives the raw
// output streams.
func (r *Runner) Run(ctx context.Context, cmd *domain.Command) error {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //nolint:gosec // caller-constructed command
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = resolveEnvironment(os.Environ(), cmd.Env)

	c.Stdout = r.wireStream(ctx, "info", ports.VertexFromContext(ctx), true)
	c.Stderr = r.wireStream(ctx, "error", ports.VertexFromContext(ctx), false)

	if err := c.Run(); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Path)
		return zerr.With(wrapped, "exit_code", exitCode(err))
	}

	return nil
}

// Output executes the command and returns its captured stdout. Stderr is
// folded into the returned error on failure.
func (r *Runner) Output(ctx context.Context, cmd *domain.Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //nolint:gosec // caller-constructed command
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = resolveEnvironment(os.Environ(), cmd.Env)

	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Path)
		wrapped = zerr.With(wrapped, "exit_code", exitCode(err))
		return nil, zerr.With(wrapped, "stderr", strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

func (r *Runner) wireStream(_ context.Context, level string, vertex ports.Vertex, stdout bool) *lineWriter {
	w := &lineWriter{logger: r.logger, level: level}
	if vertex != nil {
		if stdout {
			w.tee = vertex.Stdout()
		} else {
			w.tee = vertex.Stderr()
		}
	}
	return w
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1 // not started, or killed by signal
}
