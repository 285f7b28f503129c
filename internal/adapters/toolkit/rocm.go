package toolkit

import (
	"os"
	"path/filepath"
)

const (
	// EnvRocmPath overrides the ROCm installation root.
	EnvRocmPath = "ROCM_PATH"

	defaultRocmPath = "/opt/rocm"
)

// rocmPathDir returns the ROCm installation root.
func rocmPathDir() string {
	if root := os.Getenv(EnvRocmPath); root != "" {
		return root
	}
	return defaultRocmPath
}

func rocmLibDir(root string) string {
	return filepath.Join(root, "lib")
}

func rocmIncludeDir(root string) string {
	return filepath.Join(root, "include")
}
