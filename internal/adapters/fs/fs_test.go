package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/adapters/fs"
	"go.trai.ch/extbuild/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestResolver_ExactFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mod.c"), "int x;")

	r := fs.NewResolver()
	path, err := r.ResolveSource("mod.c", root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "mod.c"), path)
}

func TestResolver_Glob(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gen"), 0o750))
	writeFile(t, filepath.Join(root, "gen", "driver.c"), "int x;")

	r := fs.NewResolver()
	path, err := r.ResolveSource("gen/*.c", root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "gen", "driver.c"), path)
}

func TestResolver_AbsolutePattern(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "mod.c")
	writeFile(t, src, "int x;")

	r := fs.NewResolver()
	path, err := r.ResolveSource(src, "/elsewhere")
	require.NoError(t, err)
	require.Equal(t, src, path)
}

func TestResolver_NotFound(t *testing.T) {
	r := fs.NewResolver()
	_, err := r.ResolveSource("missing.c", t.TempDir())
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestResolver_Ambiguous(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.c"), "int a;")
	writeFile(t, filepath.Join(root, "b.c"), "int b;")

	r := fs.NewResolver()
	_, err := r.ResolveSource("*.c", root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "more than one")
}

func TestHasher_ComputeFileHash(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "mod.c")
	writeFile(t, path, "int x;")

	h := fs.NewHasher(fs.NewWalker())

	h1, err := h.ComputeFileHash(path)
	require.NoError(t, err)

	h2, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	require.Equal(t, h1, h2)

	writeFile(t, path, "int y;")
	h3, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	require.NotEqual(t, h1, h3)
}

func TestHasher_InputHashStable(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "mod.c")
	writeFile(t, src, "int x;")

	job := &domain.Job{
		Name:    "mod",
		Source:  src,
		SrcDir:  root,
		Backend: domain.BackendCUDA,
		Environment: map[string]string{
			"B": "2",
			"A": "1",
		},
	}
	tc := &domain.Toolchain{
		IncludeDirs: []string{"/cuda/include"},
		LibraryDirs: []string{"/cuda/lib64"},
		Libraries:   []string{"cuda"},
		ExtSuffix:   ".so",
	}

	h := fs.NewHasher(fs.NewWalker())

	h1, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)

	h2, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 16)
}

func TestWalker_SkipsVersionControlDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mod.h"), "int a;")
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".git", "stray.h"), "int b;")

	var found []string
	for path := range fs.NewWalker().WalkFiles(root) {
		found = append(found, path)
	}
	require.Equal(t, []string{filepath.Join(root, "mod.h")}, found)
}

func TestHasher_InputHashChangesWithSource(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "mod.c")
	writeFile(t, src, "int x;")

	job := &domain.Job{Name: "mod", Source: src, SrcDir: root, Backend: domain.BackendCUDA}
	tc := &domain.Toolchain{Libraries: []string{"cuda"}}

	h := fs.NewHasher(fs.NewWalker())

	h1, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)

	writeFile(t, src, "int y;")
	h2, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestHasher_InputHashChangesWithHeader(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "mod.c")
	writeFile(t, src, "int x;")
	writeFile(t, filepath.Join(root, "mod.h"), "#define A 1")

	job := &domain.Job{Name: "mod", Source: src, SrcDir: root, Backend: domain.BackendCUDA}
	tc := &domain.Toolchain{Libraries: []string{"cuda"}}

	h := fs.NewHasher(fs.NewWalker())

	h1, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "mod.h"), "#define A 2")
	h2, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestHasher_InputHashChangesWithCompiler(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "mod.c")
	writeFile(t, src, "int x;")

	job := &domain.Job{Name: "mod", Source: src, SrcDir: root, Backend: domain.BackendCUDA}
	tc := &domain.Toolchain{Libraries: []string{"cuda"}}

	h := fs.NewHasher(fs.NewWalker())

	h1, err := h.ComputeInputHash(job, tc, "gcc")
	require.NoError(t, err)

	h2, err := h.ComputeInputHash(job, tc, "clang")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestHasher_MissingSource(t *testing.T) {
	root := t.TempDir()

	job := &domain.Job{Name: "mod", Source: filepath.Join(root, "missing.c"), SrcDir: root}
	tc := &domain.Toolchain{}

	h := fs.NewHasher(fs.NewWalker())
	_, err := h.ComputeInputHash(job, tc, "gcc")
	require.Error(t, err)
}
