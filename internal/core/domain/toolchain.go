package domain

// Toolchain holds everything discovery resolved for a backend: where the
// toolkit headers and libraries live, which libraries to link, and how the
// host interpreter names extension modules.
type Toolchain struct {
	Backend     Backend
	IncludeDirs []string
	LibraryDirs []string
	Libraries   []string

	// Python is the interpreter used for introspection and for the
	// packaging-toolchain fallback.
	Python string

	// ExtSuffix is the platform extension filename suffix reported by the
	// interpreter, e.g. ".cpython-312-x86_64-linux-gnu.so".
	ExtSuffix string
}

// Command describes a single external process invocation.
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  map[string]string
}

// Argv returns the full argument vector including the executable.
func (c *Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}
