package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes cache keys for build jobs.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash covering the job definition, the
// compiler, the resolved toolchain, the source content, and any headers
// sitting next to the source. A change in any of them invalidates the
// cached artifact.
func (h *Hasher) ComputeInputHash(job *domain.Job, tc *domain.Toolchain, compiler string) (string, error) {
	hasher := xxhash.New()

	h.hashJobDefinition(job, compiler, hasher)
	h.hashToolchain(tc, hasher)

	if err := h.hashFile(job.Source, hasher); err != nil {
		return "", err
	}
	if err := h.hashLocalHeaders(job.SrcDir, hasher); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashJobDefinition(job *domain.Job, compiler string, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(job.Name)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(string(job.Backend))
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(compiler)
	_, _ = hasher.Write([]byte{0})

	hashStrings(job.IncludeDirs, hasher)
	hashStrings(job.LibraryDirs, hasher)
	hashEnvironment(job.Environment, hasher)
}

func (h *Hasher) hashToolchain(tc *domain.Toolchain, hasher *xxhash.Digest) {
	hashStrings(tc.IncludeDirs, hasher)
	hashStrings(tc.LibraryDirs, hasher)
	hashStrings(tc.Libraries, hasher)
	_, _ = hasher.WriteString(tc.ExtSuffix)
	_, _ = hasher.Write([]byte{0})
}

// hashLocalHeaders hashes every .h file in the source directory. The
// directory doubles as an include path during compilation, so generated
// headers there are real inputs.
func (h *Hasher) hashLocalHeaders(srcDir string, hasher *xxhash.Digest) error {
	if srcDir == "" {
		return nil
	}

	var headers []string
	for path := range h.walker.WalkFiles(srcDir) {
		if strings.HasSuffix(path, ".h") {
			headers = append(headers, path)
		}
	}
	sort.Strings(headers)

	for _, header := range headers {
		if err := h.hashFile(header, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(filepath.Base(path)))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

func hashStrings(strs []string, hasher *xxhash.Digest) {
	for _, s := range strs {
		_, _ = hasher.WriteString(s)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

func hashEnvironment(env map[string]string, hasher *xxhash.Digest) {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(env[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
