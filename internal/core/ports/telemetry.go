package ports

import "context"

// Vertex is one recorded unit of pipeline work.
type Vertex interface {
	// Done marks the vertex finished; a non-nil error marks it failed.
	Done(err error)
}

// Telemetry records pipeline progress as vertices, one per stage or target.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	Record(ctx context.Context, name string) (context.Context, Vertex)
	Close() error
}
