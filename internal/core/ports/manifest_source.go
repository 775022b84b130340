package ports

import "go.trai.ch/shipper/internal/core/domain"

// ManifestSource reads the project manifest. Loading is pure and
// deterministic: the same content always yields the same Manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_source.go -destination=mocks/mock_manifest_source.go -package=mocks
type ManifestSource interface {
	Load(path string) (domain.Manifest, error)
}
