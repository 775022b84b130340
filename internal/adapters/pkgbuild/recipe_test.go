package pkgbuild_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shipper/internal/adapters/pkgbuild"
	"go.trai.ch/shipper/internal/core/domain"
)

var manifest = domain.Manifest{
	Name:        "tpi",
	Version:     "1.0.7",
	Authors:     []string{"Sven Rademakers <sven@example.com>"},
	Description: "Official command line tool for interacting with the BMC",
	Homepage:    "https://example.com",
	Repository:  "https://github.com/turing-machines/tpi",
	License:     "Apache-2.0",
}

func TestPackage_FixedRecipe(t *testing.T) {
	outDir := t.TempDir()
	p := pkgbuild.NewPackager()

	artifacts, err := p.Package(context.Background(), manifest, nil, outDir)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	assert.Equal(t, domain.FamilyArch, artifacts[0].Family)
	assert.Equal(t, domain.ArchAny, artifacts[0].Arch)
	assert.Equal(t, "recipe", artifacts[0].Format)

	content, err := os.ReadFile(artifacts[0].Path)
	require.NoError(t, err)
	recipe := string(content)

	for _, want := range []string{
		"# Maintainer: Sven Rademakers <sven@example.com>",
		"pkgname=tpi",
		"pkgver=1.0.7",
		"pkgrel=1",
		"pkgdesc='Official command line tool for interacting with the BMC'",
		"url=https://example.com",
		"license=('Apache-2.0')",
		"source=('https://github.com/turing-machines/tpi/archive/refs/tags/v1.0.7.tar.gz')",
		"SOURCE_DATE_EPOCH",
	} {
		assert.Contains(t, recipe, want)
	}
	assert.NotContains(t, recipe, "pkgver()", "fixed recipe must not detect its version")
}

func TestPackage_RollingRecipe(t *testing.T) {
	outDir := t.TempDir()
	p := pkgbuild.NewPackager()

	_, err := p.Package(context.Background(), manifest, nil, outDir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "arch", "PKGBUILD-git"))
	require.NoError(t, err)
	recipe := string(content)

	assert.Contains(t, recipe, "pkgname=tpi-git")
	assert.Contains(t, recipe, "source=('git+https://github.com/turing-machines/tpi.git')")
	assert.Contains(t, recipe, "pkgver()")
	assert.Contains(t, recipe, "git describe --tags")
}

func TestPackage_NoRepository(t *testing.T) {
	m := manifest
	m.Repository = ""

	_, err := pkgbuild.NewPackager().Package(context.Background(), m, nil, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository")
}
