package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// fallbackBuild compiles the job through the interpreter's packaging
// toolchain. It writes a throwaway setup script next to the source and runs
// `build_ext` with both the build and staging directories pinned to the
// source directory, so the artifact lands in the same place the direct
// compilation would have put it.
func (b *Builder) fallbackBuild(ctx context.Context, job *domain.Job, tc *domain.Toolchain) error {
	script := generateSetupScript(job, tc)

	setupPath := filepath.Join(job.SrcDir, fmt.Sprintf("%s_setup.py", job.Name))
	if err := os.WriteFile(setupPath, []byte(script), 0o644); err != nil {
		return zerr.Wrap(err, "failed to write setup script")
	}
	defer os.Remove(setupPath)

	cmd := &domain.Command{
		Path: tc.Python,
		Args: []string{
			setupPath,
			"build_ext",
			"--build-temp=" + job.SrcDir,
			"--build-lib=" + job.SrcDir,
			"-q",
		},
		Dir: job.SrcDir,
		Env: job.Environment,
	}
	return b.runner.Run(ctx, cmd)
}

// generateSetupScript renders a minimal setuptools script describing the job
// as a single C extension module.
func generateSetupScript(job *domain.Job, tc *domain.Toolchain) string {
	includeDirs := append([]string{job.SrcDir}, tc.IncludeDirs...)
	includeDirs = append(includeDirs, job.IncludeDirs...)
	libraryDirs := append(append([]string{}, tc.LibraryDirs...), job.LibraryDirs...)

	var sb strings.Builder
	sb.WriteString("import setuptools\n\n")
	sb.WriteString("ext = setuptools.Extension(\n")
	fmt.Fprintf(&sb, "    name=%q,\n", job.Name)
	sb.WriteString("    language='c',\n")
	fmt.Fprintf(&sb, "    sources=[%q],\n", job.Source)
	fmt.Fprintf(&sb, "    include_dirs=%s,\n", pyStringList(includeDirs))
	sb.WriteString("    extra_compile_args=['-O3'],\n")
	fmt.Fprintf(&sb, "    library_dirs=%s,\n", pyStringList(libraryDirs))
	fmt.Fprintf(&sb, "    libraries=%s,\n", pyStringList(tc.Libraries))
	sb.WriteString(")\n\n")
	fmt.Fprintf(&sb, "setuptools.setup(name=%q, ext_modules=[ext])\n", job.Name)
	return sb.String()
}

// pyStringList renders a slice as a Python list literal of quoted strings.
func pyStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
