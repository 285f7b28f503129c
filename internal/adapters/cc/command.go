package cc

import (
	"runtime"
	"strings"

	"go.trai.ch/extbuild/internal/core/domain"
)

// Command composes the compiler invocation producing the shared object at
// out. MSVC takes a different argument shape than gcc/clang; everything
// else shares the POSIX form, minus -fPIC on Windows.
func Command(compiler string, job *domain.Job, tc *domain.Toolchain, out string) *domain.Command {
	includeDirs := collectIncludeDirs(job, tc)
	libraryDirs := collectLibraryDirs(job, tc)

	var args []string
	if isMSVC(compiler) {
		args = msvcArgs(job, tc, includeDirs, libraryDirs, out)
	} else {
		args = posixArgs(job, tc, includeDirs, libraryDirs, out)
	}

	return &domain.Command{
		Path: compiler,
		Args: args,
		Dir:  job.SrcDir,
		Env:  job.Environment,
	}
}

func collectIncludeDirs(job *domain.Job, tc *domain.Toolchain) []string {
	dirs := make([]string, 0, len(tc.IncludeDirs)+len(job.IncludeDirs)+1)
	dirs = append(dirs, tc.IncludeDirs...)
	dirs = append(dirs, job.IncludeDirs...)
	// The source directory itself is always searchable for headers
	// generated next to the source.
	dirs = append(dirs, job.SrcDir)
	return dirs
}

func collectLibraryDirs(job *domain.Job, tc *domain.Toolchain) []string {
	dirs := make([]string, 0, len(tc.LibraryDirs)+len(job.LibraryDirs))
	dirs = append(dirs, tc.LibraryDirs...)
	dirs = append(dirs, job.LibraryDirs...)
	return dirs
}

func posixArgs(job *domain.Job, tc *domain.Toolchain, includeDirs, libraryDirs []string, out string) []string {
	args := []string{job.Source, "-O3", "-shared"}
	if runtime.GOOS != "windows" {
		args = append(args, "-fPIC")
	}
	for _, dir := range includeDirs {
		args = append(args, "-I"+dir)
	}
	for _, dir := range libraryDirs {
		args = append(args, "-L"+dir)
	}
	for _, lib := range tc.Libraries {
		args = append(args, "-l"+lib)
	}
	return append(args, "-o", out)
}

func msvcArgs(job *domain.Job, tc *domain.Toolchain, includeDirs, libraryDirs []string, out string) []string {
	args := []string{job.Source, "/nologo", "/O2", "/LD"}
	for _, dir := range includeDirs {
		args = append(args, "/I"+dir)
	}
	args = append(args, "/link")
	for _, dir := range libraryDirs {
		args = append(args, "/LIBPATH:"+dir)
	}
	for _, lib := range tc.Libraries {
		args = append(args, lib+".lib")
	}
	return append(args, "/OUT:"+out)
}

// isMSVC reports whether the compiler is cl.exe. The path may use either
// separator regardless of the host OS, so filepath.Base is not enough.
func isMSVC(compiler string) bool {
	base := compiler
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".exe") == "cl"
}
