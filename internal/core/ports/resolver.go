package ports

// SourceResolver resolves a source path, which may be a glob pattern, to
// exactly one concrete file.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SourceResolver interface {
	// ResolveSource resolves the pattern relative to root and returns the
	// matching file path. It is an error for the pattern to match zero
	// files or more than one.
	ResolveSource(pattern, root string) (string, error)
}
