package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shipper/internal/adapters/manifest"
	"go.trai.ch/shipper/internal/core/domain"
)

const validManifest = `
[package]
name = "tpi"
version = "1.0.7"
authors = ["Sven Rademakers <sven@example.com>", "Ruslan Akbashev <ruslan@example.com>"]
description = "Official command line tool for interacting with the BMC"
homepage = "https://example.com"
repository = "https://github.com/turing-machines/tpi"
license = "Apache-2.0"

[dependencies]
clap = "4"
`

func TestParse_Valid(t *testing.T) {
	m, err := manifest.Parse([]byte(validManifest))
	require.NoError(t, err)

	assert.Equal(t, "tpi", m.Name)
	assert.Equal(t, "1.0.7", m.Version)
	assert.Equal(t, "Sven Rademakers <sven@example.com>", m.Maintainer())
	assert.Equal(t, "https://github.com/turing-machines/tpi", m.Repository)
	assert.Equal(t, "Apache-2.0", m.License)
}

func TestParse_Deterministic(t *testing.T) {
	a, err := manifest.Parse([]byte(validManifest))
	require.NoError(t, err)
	b, err := manifest.Parse([]byte(validManifest))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParse_MissingVersion(t *testing.T) {
	content := `
[package]
name = "tpi"
description = "no version here"
`
	_, err := manifest.Parse([]byte(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedManifest))
}

func TestParse_BadVersion(t *testing.T) {
	content := `
[package]
name = "tpi"
version = "latest"
`
	_, err := manifest.Parse([]byte(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedManifest))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(validManifest), 0o600))

	m, err := manifest.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.7", m.Version)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := manifest.NewLoader().Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
