package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// Runner defines the interface for executing external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the command, streaming its output to the logger.
	// A non-zero exit status is returned as an error carrying the exit
	// code as metadata.
	Run(ctx context.Context, cmd *domain.Command) error

	// Output executes the command and returns its captured stdout.
	Output(ctx context.Context, cmd *domain.Command) ([]byte, error)
}
