package toolkit

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// EnvLibcudaPath overrides libcuda directory discovery entirely.
	EnvLibcudaPath = "EXTBUILD_LIBCUDA_PATH"
	// EnvCudaPath is the toolkit root set by the CUDA installer on Windows.
	EnvCudaPath = "CUDA_PATH"
	// EnvCudaHome is the conventional toolkit root on POSIX systems.
	EnvCudaHome = "CUDA_HOME"
	// EnvCudaIncludePath overrides the toolkit include directory.
	EnvCudaIncludePath = "CUDA_INCLUDE_PATH"

	defaultCudaHome = "/usr/local/cuda"
	ldconfigPath    = "/sbin/ldconfig"
)

// libcudaDirs returns the directories containing libcuda.so. Successful
// lookups are memoized.
//
// Resolution order mirrors the driver's own loader conventions: an explicit
// env override, then CUDA_PATH on Windows, then the linker cache reported
// by "/sbin/ldconfig -p" on POSIX systems.
func (l *Locator) libcudaDirs(ctx context.Context) ([]string, error) {
	l.cudaMu.Lock()
	defer l.cudaMu.Unlock()

	if l.cudaDirs != nil {
		return l.cudaDirs, nil
	}

	dirs, err := l.discoverLibcudaDirs(ctx)
	if err != nil {
		return nil, err
	}
	l.cudaDirs = dirs
	return dirs, nil
}

func (l *Locator) discoverLibcudaDirs(ctx context.Context) ([]string, error) {
	if override := os.Getenv(EnvLibcudaPath); override != "" {
		return []string{override}, nil
	}

	if runtime.GOOS == "windows" {
		cudaPath := os.Getenv(EnvCudaPath)
		if cudaPath == "" {
			return nil, domain.ErrCudaPathNotSet
		}
		return []string{filepath.Join(cudaPath, "lib", "x64")}, nil
	}

	out, err := l.runner.Output(ctx, &domain.Command{
		Path: ldconfigPath,
		Args: []string{"-p"},
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to query the linker cache")
	}

	locs := parseLdconfig(string(out))
	dirs := uniqueDirs(locs)

	// The cache lists versioned names like libcuda.so.1; linking needs the
	// unversioned name to resolve in at least one of those directories.
	for _, dir := range dirs {
		if _, statErr := os.Stat(filepath.Join(dir, "libcuda.so")); statErr == nil {
			l.logger.Info("found libcuda.so in " + dir)
			return dirs, nil
		}
	}

	if len(locs) > 0 {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrLibcudaNotFound,
				"create a symlink named libcuda.so next to one of the candidate files"),
			"candidates", locs,
		)
	}
	return nil, zerr.Wrap(domain.ErrLibcudaNotFound,
		"make sure the GPU driver is set up, then run /sbin/ldconfig (requires sudo) to refresh the linker cache")
}

// parseLdconfig extracts libcuda.so locations from "ldconfig -p" output.
// Each entry looks like:
//
//	libcuda.so.1 (libc6,x86-64) => /lib/x86_64-linux-gnu/libcuda.so.1
func parseLdconfig(out string) []string {
	var locs []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "libcuda.so") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		locs = append(locs, fields[len(fields)-1])
	}
	return locs
}

func uniqueDirs(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// cudaIncludeDir returns the toolkit header directory.
func cudaIncludeDir() string {
	if override := os.Getenv(EnvCudaIncludePath); override != "" {
		return override
	}
	home := os.Getenv(EnvCudaHome)
	if home == "" {
		home = defaultCudaHome
	}
	return filepath.Join(home, "include")
}
