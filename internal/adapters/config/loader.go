// Package config provides the manifest loader for extbuild.
package config

import (
	"os"
	"slices"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the manifest at the given path.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var buildfile Buildfile
	if err := yaml.Unmarshal(data, &buildfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	manifest := &domain.Manifest{
		Version: buildfile.Version,
		Jobs:    make(map[string]*domain.Job, len(buildfile.Jobs)),
	}

	for name, dto := range buildfile.Jobs {
		job, err := jobFromDTO(name, dto)
		if err != nil {
			return nil, err
		}
		manifest.Jobs[name] = job
	}

	return manifest, nil
}

func jobFromDTO(name string, dto JobDTO) (*domain.Job, error) {
	if dto.Source == "" {
		return nil, zerr.With(zerr.New("job has no source"), "job", name)
	}

	backend := domain.BackendCUDA
	if dto.Backend != "" {
		var err error
		backend, err = domain.ParseBackend(dto.Backend)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid job definition"), "job", name)
		}
	}

	job := &domain.Job{
		Name:        name,
		Source:      dto.Source,
		SrcDir:      dto.SrcDir,
		Backend:     backend,
		IncludeDirs: canonicalizeStrings(dto.IncludeDirs),
		LibraryDirs: canonicalizeStrings(dto.LibraryDirs),
		Environment: dto.Environment,
	}
	job.Normalize()
	return job, nil
}

// canonicalizeStrings sorts and deduplicates so equivalent manifests hash
// identically.
func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	return slices.Compact(sorted)
}
