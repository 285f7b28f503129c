// Package domain holds the core types for the extension build helper.
package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// Backend identifies the GPU toolkit an extension module links against.
type Backend string

const (
	// BackendCUDA links against libcuda.
	BackendCUDA Backend = "cuda"
	// BackendROCm links against the HIP runtime (libamdhip64).
	BackendROCm Backend = "rocm"
)

// ParseBackend converts a string to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendCUDA:
		return BackendCUDA, nil
	case BackendROCm:
		return BackendROCm, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownBackend, "cannot parse backend"), "backend", s)
	}
}

// Job describes one extension module to compile: a single C source file
// turned into a loadable shared object next to it.
type Job struct {
	Name        string
	Source      string
	SrcDir      string
	Backend     Backend
	IncludeDirs []string
	LibraryDirs []string
	Environment map[string]string
}

// Normalize fills in defaults: the source directory defaults to the
// directory containing the source file, the backend defaults to CUDA.
func (j *Job) Normalize() {
	if j.SrcDir == "" {
		j.SrcDir = filepath.Dir(j.Source)
	}
	if j.Backend == "" {
		j.Backend = BackendCUDA
	}
}

// Manifest is the parsed build configuration: a set of named jobs.
type Manifest struct {
	Version string
	Jobs    map[string]*Job
}

// Job returns the named job or ErrJobNotFound.
func (m *Manifest) Job(name string) (*Job, error) {
	j, ok := m.Jobs[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrJobNotFound, "not in manifest"), "job", name)
	}
	return j, nil
}

// JobNames returns the names of all jobs in the manifest.
func (m *Manifest) JobNames() []string {
	names := make([]string, 0, len(m.Jobs))
	for name := range m.Jobs {
		names = append(names, name)
	}
	return names
}
