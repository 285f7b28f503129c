package ports

import "go.trai.ch/extbuild/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash computes the content hash of a single file.
	ComputeFileHash(path string) (uint64, error)

	// ComputeInputHash computes a single hash covering the job definition,
	// its source content, and the resolved toolchain.
	ComputeInputHash(job *domain.Job, tc *domain.Toolchain, compiler string) (string, error)
}
