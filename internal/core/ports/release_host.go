package ports

import (
	"context"

	"go.trai.ch/shipper/internal/core/domain"
)

// ReleaseHost publishes a release binding a tag to its artifact set.
//
//go:generate go run go.uber.org/mock/mockgen -source=release_host.go -destination=mocks/mock_release_host.go -package=mocks
type ReleaseHost interface {
	// CreateRelease creates the release and uploads every artifact in it.
	CreateRelease(ctx context.Context, rel domain.Release) error
}
