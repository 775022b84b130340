package ports

import "go.trai.ch/shipper/internal/core/domain"

// ConfigLoader reads the pipeline configuration file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load(path string) (domain.PipelineConfig, error)
}
