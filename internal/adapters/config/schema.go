package config

// Buildfile represents the structure of the extbuild.yaml manifest.
type Buildfile struct {
	Version string            `yaml:"version"`
	Jobs    map[string]JobDTO `yaml:"jobs"`
}

// JobDTO represents a job definition in the manifest.
type JobDTO struct {
	Source      string            `yaml:"source"`
	SrcDir      string            `yaml:"srcDir"`
	Backend     string            `yaml:"backend"`
	IncludeDirs []string          `yaml:"includeDirs"`
	LibraryDirs []string          `yaml:"libraryDirs"`
	Environment map[string]string `yaml:"environment"`
}
