package domain

import "go.trai.ch/zerr"

var (
	// ErrCompilerNotFound is returned when no C compiler could be located.
	ErrCompilerNotFound = zerr.New("failed to find C compiler, specify one via the CC environment variable")

	// ErrLibcudaNotFound is returned when no directory containing libcuda.so could be located.
	ErrLibcudaNotFound = zerr.New("libcuda.so not found")

	// ErrCudaPathNotSet is returned on Windows when CUDA_PATH is unset.
	ErrCudaPathNotSet = zerr.New("CUDA_PATH is not set")

	// ErrUnknownBackend is returned when a manifest names a backend that is not supported.
	ErrUnknownBackend = zerr.New("unknown backend")

	// ErrJobNotFound is returned when a requested job is not present in the manifest.
	ErrJobNotFound = zerr.New("job not found")

	// ErrSourceNotFound is returned when a job's source file does not exist.
	ErrSourceNotFound = zerr.New("input not found")

	// ErrArtifactMissing is returned when the compiler reported success but produced no output.
	ErrArtifactMissing = zerr.New("build produced no artifact")

	// ErrBuildFailed is returned when both the direct compiler invocation and the fallback failed.
	ErrBuildFailed = zerr.New("build failed")
)
