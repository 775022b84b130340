package ports

import (
	"context"

	"go.trai.ch/shipper/internal/core/domain"
)

// Packager transforms build artifacts into one platform family's
// distributable units. A packager must be total over its input architecture
// set: it fails loudly on a missing input rather than emit a partial package.
//
//go:generate go run go.uber.org/mock/mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	// Family names the packaging ecosystem this strategy serves.
	Family() domain.Family

	// Package consumes the family's build artifacts and writes distributable
	// units under outDir.
	Package(ctx context.Context, m domain.Manifest, artifacts []domain.BuildArtifact, outDir string) ([]domain.PackageArtifact, error)
}
