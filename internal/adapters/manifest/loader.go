// Package manifest reads the project manifest the release is derived from.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"
	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.ManifestSource for Cargo-style TOML manifests.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// cargoFile mirrors the [package] table of the manifest.
type cargoFile struct {
	Package packageDTO `toml:"package"`
}

type packageDTO struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Authors     []string `toml:"authors"`
	Description string   `toml:"description"`
	Homepage    string   `toml:"homepage"`
	Repository  string   `toml:"repository"`
	License     string   `toml:"license"`
}

// Load reads and validates the manifest at path. The version field is taken
// literally; no normalization is applied.
func (l *Loader) Load(path string) (domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by config
	if err != nil {
		return domain.Manifest{}, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	return Parse(data)
}

// Parse decodes manifest content. Pure and deterministic.
func Parse(data []byte) (domain.Manifest, error) {
	var file cargoFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Manifest{}, zerr.Wrap(err, "failed to parse manifest")
	}

	m := domain.Manifest{
		Name:        file.Package.Name,
		Version:     file.Package.Version,
		Authors:     file.Package.Authors,
		Description: file.Package.Description,
		Homepage:    file.Package.Homepage,
		Repository:  file.Package.Repository,
		License:     file.Package.License,
	}
	if err := m.Validate(); err != nil {
		return domain.Manifest{}, err
	}
	return m, nil
}
