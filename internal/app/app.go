// Package app implements the application layer for shipper.
package app

import (
	"context"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/shipper/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configs   ports.ConfigLoader
	manifests ports.ManifestSource
	pipeline  *pipeline.Pipeline
}

// New creates a new App instance.
func New(configs ports.ConfigLoader, manifests ports.ManifestSource, pipe *pipeline.Pipeline) *App {
	return &App{
		configs:   configs,
		manifests: manifests,
		pipeline:  pipe,
	}
}

// Release runs the full release pipeline for the project described by the
// given configuration file.
func (a *App) Release(ctx context.Context, configPath string) error {
	m, cfg, err := a.load(configPath)
	if err != nil {
		return err
	}

	if err := a.pipeline.Run(ctx, m, cfg); err != nil {
		return zerr.Wrap(err, "release execution failed")
	}
	return nil
}

// Package builds and packages a single platform family without publishing.
// The selector must name a known family.
func (a *App) Package(ctx context.Context, configPath, selector string) error {
	family, err := domain.ParseFamily(selector)
	if err != nil {
		return err
	}

	m, cfg, err := a.load(configPath)
	if err != nil {
		return err
	}

	if err := a.pipeline.PackageFamily(ctx, m, cfg, family); err != nil {
		return zerr.With(zerr.Wrap(err, "packaging execution failed"), "family", selector)
	}
	return nil
}

func (a *App) load(configPath string) (domain.Manifest, domain.PipelineConfig, error) {
	cfg, err := a.configs.Load(configPath)
	if err != nil {
		return domain.Manifest{}, domain.PipelineConfig{}, zerr.Wrap(err, "failed to load configuration")
	}

	m, err := a.manifests.Load(cfg.ManifestPath)
	if err != nil {
		return domain.Manifest{}, domain.PipelineConfig{}, zerr.Wrap(err, "failed to load manifest")
	}
	if err := m.Validate(); err != nil {
		return domain.Manifest{}, domain.PipelineConfig{}, err
	}

	return m, cfg, nil
}
