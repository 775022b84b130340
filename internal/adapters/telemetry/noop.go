// Package telemetry provides progress recording for pipeline stages.
package telemetry

import (
	"context"

	"go.trai.ch/shipper/internal/core/ports"
)

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// NewNoop creates a no-op telemetry provider.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns the context unchanged and a vertex that ignores completion.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (n *Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Done(error) {}
