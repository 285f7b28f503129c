package fs

import (
	"path/filepath"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver implements SourceResolver using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveSource resolves the pattern relative to root to exactly one file.
// A pattern matching several files is rejected rather than silently picking
// one; an extension module has a single source.
func (r *Resolver) ResolveSource(pattern, root string) (string, error) {
	path := pattern
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, pattern)
	}

	matches, err := filepath.Glob(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
	}

	switch len(matches) {
	case 0:
		return "", zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "no file matches the pattern"), "path", path)
	case 1:
		return matches[0], nil
	default:
		ambiguous := zerr.With(zerr.New("source pattern matches more than one file"), "path", path)
		return "", zerr.With(ambiguous, "matches", matches)
	}
}
