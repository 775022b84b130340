package ports

import "context"

// TagService exposes the tag namespace of the publishing destination for
// the repository at repoDir. Tag existence is the sole idempotency
// mechanism of the pipeline, so queries must reflect the namespace shared
// between concurrent runs, not run-local state.
//
//go:generate go run go.uber.org/mock/mockgen -source=tags.go -destination=mocks/mock_tags.go -package=mocks
type TagService interface {
	// Exists reports whether a tag with exactly this name exists. A query
	// failure must be propagated, never treated as non-existence.
	Exists(ctx context.Context, repoDir, name string) (bool, error)

	// Create creates the tag at the current head and makes it externally
	// observable.
	Create(ctx context.Context, repoDir, name, message string) error
}
