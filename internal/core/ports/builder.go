// Package ports defines the core interfaces for the release pipeline.
package ports

import (
	"context"

	"go.trai.ch/shipper/internal/core/domain"
)

// Builder compiles the tool for one target of the matrix.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Build produces the raw binary for the target from the source tree at
	// srcDir. It blocks on the external toolchain invocation.
	Build(ctx context.Context, m domain.Manifest, target domain.Target, srcDir string) (domain.BuildArtifact, error)
}
