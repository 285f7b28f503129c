package toolkit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// EnvPython overrides the interpreter used for introspection and the
	// packaging fallback.
	EnvPython = "EXTBUILD_PYTHON"
	// EnvPythonLibDirs overrides the interpreter library directories on Windows.
	EnvPythonLibDirs = "PYTHON_LIB_DIRS"
)

// introspectScript asks the interpreter for the values the build needs.
// Debian patches the default install scheme to posix_local starting with
// 3.10; normalizing to posix_prefix keeps the include path usable with a
// system-wide interpreter.
const introspectScript = `import json, sys, sysconfig
scheme = sysconfig.get_default_scheme()
if scheme == "posix_local":
    scheme = "posix_prefix"
print(json.dumps({
    "ext_suffix": sysconfig.get_config_var("EXT_SUFFIX"),
    "include": sysconfig.get_paths(scheme=scheme)["include"],
    "installed_base": sysconfig.get_config_var("installed_base"),
}))
`

type pythonInfo struct {
	Interpreter string
	ExtSuffix   string
	IncludeDir  string
	LibDirs     []string
}

// pythonInfo introspects the host interpreter. Successful introspection is
// memoized.
func (l *Locator) pythonInfo(ctx context.Context) (pythonInfo, error) {
	l.pyMu.Lock()
	defer l.pyMu.Unlock()

	if l.py != nil {
		return *l.py, nil
	}

	info, err := l.introspectPython(ctx)
	if err != nil {
		return pythonInfo{}, err
	}
	l.py = &info
	return info, nil
}

func (l *Locator) introspectPython(ctx context.Context) (pythonInfo, error) {
	interp := defaultInterpreter()

	out, err := l.runner.Output(ctx, &domain.Command{
		Path: interp,
		Args: []string{"-c", introspectScript},
	})
	if err != nil {
		return pythonInfo{}, zerr.With(
			zerr.Wrap(err, "failed to introspect the python interpreter"),
			"interpreter", interp,
		)
	}

	var raw struct {
		ExtSuffix     string `json:"ext_suffix"`
		Include       string `json:"include"`
		InstalledBase string `json:"installed_base"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &raw); err != nil {
		return pythonInfo{}, zerr.Wrap(err, "failed to parse interpreter introspection output")
	}

	info := pythonInfo{
		Interpreter: interp,
		ExtSuffix:   raw.ExtSuffix,
		IncludeDir:  raw.Include,
	}

	if runtime.GOOS == "windows" {
		libDir := os.Getenv(EnvPythonLibDirs)
		if libDir == "" {
			libDir = filepath.Join(raw.InstalledBase, "libs")
		}
		info.LibDirs = []string{libDir}
	}

	return info, nil
}

func defaultInterpreter() string {
	if interp := os.Getenv(EnvPython); interp != "" {
		return interp
	}
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}
