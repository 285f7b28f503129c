// Package cc detects the host C compiler and composes compile command lines.
package cc

import (
	"context"
	"os"
	"os/exec"
	"sync"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
)

var _ ports.CompilerDetector = (*Detector)(nil)

// candidates are tried in order when CC is unset. gcc is preferred over
// clang.
var candidates = []string{"gcc", "clang"}

// Detector finds a usable C compiler, memoizing the result per process.
type Detector struct {
	once sync.Once
	cc   string
	err  error
}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the compiler executable. The CC environment variable takes
// precedence and is returned verbatim; otherwise the candidates are searched
// on PATH.
func (d *Detector) Detect(_ context.Context) (string, error) {
	d.once.Do(func() {
		d.cc, d.err = detect()
	})
	return d.cc, d.err
}

func detect() (string, error) {
	if cc := os.Getenv("CC"); cc != "" {
		return cc, nil
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", domain.ErrCompilerNotFound
}
