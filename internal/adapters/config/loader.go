// Package config provides the pipeline configuration loader.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// NewLoader creates a new FileConfigLoader.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{}
}

// shipfile represents the structure of the shipper.yaml configuration file.
type shipfile struct {
	Manifest    string      `yaml:"manifest"`
	Source      string      `yaml:"source"`
	Out         string      `yaml:"out"`
	Parallelism int         `yaml:"parallelism"`
	Release     releaseDTO  `yaml:"release"`
	Targets     []targetDTO `yaml:"targets"`
}

type releaseDTO struct {
	Repository string `yaml:"repository"`
}

// targetDTO represents one build matrix entry in the configuration.
type targetDTO struct {
	Arch   string `yaml:"arch"`
	Triple string `yaml:"triple"`
	OS     string `yaml:"os"`
	Cross  bool   `yaml:"cross"`
}

// Load reads a configuration file and returns the pipeline context. Absent
// fields fall back to defaults; an empty targets list means the fixed
// default matrix.
func (l *FileConfigLoader) Load(path string) (domain.PipelineConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.PipelineConfig{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file shipfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.PipelineConfig{}, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := domain.PipelineConfig{
		ManifestPath: file.Manifest,
		SourceDir:    file.Source,
		OutDir:       file.Out,
		Repository:   file.Release.Repository,
		Parallelism:  file.Parallelism,
	}
	applyDefaults(&cfg)

	for _, dto := range file.Targets {
		target, err := parseTarget(dto)
		if err != nil {
			return domain.PipelineConfig{}, err
		}
		cfg.Targets = append(cfg.Targets, target)
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = domain.DefaultTargets()
	}

	if cfg.Repository == "" {
		return domain.PipelineConfig{}, zerr.New("release.repository is required")
	}

	if !filepath.IsAbs(cfg.ManifestPath) {
		cfg.ManifestPath = filepath.Join(cfg.SourceDir, cfg.ManifestPath)
	}
	return cfg, nil
}

func applyDefaults(cfg *domain.PipelineConfig) {
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = "Cargo.toml"
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = "."
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "dist"
	}
}

func parseTarget(dto targetDTO) (domain.Target, error) {
	if dto.Triple == "" || dto.Arch == "" {
		return domain.Target{}, zerr.With(zerr.New("target requires arch and triple"), "triple", dto.Triple)
	}
	switch domain.OS(dto.OS) {
	case domain.OSLinux, domain.OSWindows, domain.OSDarwin:
	default:
		return domain.Target{}, zerr.With(zerr.New("unknown target os"), "os", dto.OS)
	}
	return domain.Target{
		Arch:   domain.Arch(dto.Arch),
		Triple: dto.Triple,
		OS:     domain.OS(dto.OS),
		Cross:  dto.Cross,
	}, nil
}
