// Package pkgbuild renders Arch-style build recipes. The recipe itself is
// the distributable unit; no prebuilt binary ships for this family.
package pkgbuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Packager)(nil)

// recipeData are the named slots of a recipe. A single substitution pass
// over these fields produces the whole file.
type recipeData struct {
	PkgName    string
	PkgVer     string
	PkgDesc    string
	Maintainer string
	URL        string
	License    string
	SourceURL  string
	// Rolling recipes compute their version from the repository description
	// at build time instead of checking out a fixed tag.
	Rolling bool
}

var recipeTemplate = template.Must(template.New("recipe").Parse(
	`# Maintainer: {{.Maintainer}}

pkgname={{.PkgName}}{{if .Rolling}}-git{{end}}
pkgver={{.PkgVer}}
pkgrel=1
pkgdesc='{{.PkgDesc}}'
url={{.URL}}
license=('{{.License}}')
makedepends=('cargo'{{if .Rolling}} 'git'{{end}})
arch=('any')
source=('{{.SourceURL}}')
sha256sums=('SKIP')
{{if .Rolling}}
pkgver() {
    cd "$srcdir/{{.PkgName}}"
    git describe --tags --abbrev=7 | sed 's/^v//;s/-/./g'
}
{{end}}
prepare() {
    cd "$srcdir/{{.PkgName}}{{if not .Rolling}}-{{.PkgVer}}{{end}}"
    export RUSTUP_TOOLCHAIN=stable
    cargo fetch --locked --target "$CARCH-unknown-linux-gnu"
}

build() {
    export RUSTUP_TOOLCHAIN=stable
    export CARGO_TARGET_DIR=target
    export SOURCE_DATE_EPOCH=315532800
    cd "$srcdir/{{.PkgName}}{{if not .Rolling}}-{{.PkgVer}}{{end}}" && cargo build --frozen --release
}

check() {
    export RUSTUP_TOOLCHAIN=stable
    cd "$srcdir/{{.PkgName}}{{if not .Rolling}}-{{.PkgVer}}{{end}}" && cargo test --frozen
}

package() {
    install -Dm0755 -t "$pkgdir/usr/bin/" "$srcdir/{{.PkgName}}{{if not .Rolling}}-{{.PkgVer}}{{end}}/target/release/{{.PkgName}}"
}
`))

// Packager implements ports.Packager for the Arch family.
type Packager struct{}

// NewPackager creates an Arch recipe packager.
func NewPackager() *Packager {
	return &Packager{}
}

// Family returns the platform family this packager serves.
func (p *Packager) Family() domain.Family {
	return domain.FamilyArch
}

// Package renders both recipe variants under outDir. Only the fixed-version
// recipe joins the release artifact set; the rolling variant lives beside it
// for the user repository.
func (p *Packager) Package(ctx context.Context, m domain.Manifest, artifacts []domain.BuildArtifact, outDir string) ([]domain.PackageArtifact, error) {
	if m.Repository == "" {
		return nil, zerr.With(zerr.New("manifest has no repository url"), "family", string(domain.FamilyArch))
	}

	dir := filepath.Join(outDir, "arch")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create recipe directory")
	}

	fixed := filepath.Join(dir, "PKGBUILD")
	if err := render(fixed, fixedData(m)); err != nil {
		return nil, err
	}
	rolling := filepath.Join(dir, "PKGBUILD-git")
	if err := render(rolling, rollingData(m)); err != nil {
		return nil, err
	}

	return []domain.PackageArtifact{{
		Family: domain.FamilyArch,
		Arch:   domain.ArchAny,
		Format: "recipe",
		Path:   fixed,
	}}, nil
}

func fixedData(m domain.Manifest) recipeData {
	return recipeData{
		PkgName:    m.Name,
		PkgVer:     m.Version,
		PkgDesc:    m.Description,
		Maintainer: m.Maintainer(),
		URL:        m.Homepage,
		License:    license(m),
		SourceURL:  strings.TrimSuffix(m.Repository, "/") + "/archive/refs/tags/" + domain.TagFor(m.Version) + ".tar.gz",
	}
}

func rollingData(m domain.Manifest) recipeData {
	data := fixedData(m)
	data.Rolling = true
	data.SourceURL = "git+" + strings.TrimSuffix(m.Repository, "/") + ".git"
	return data
}

func license(m domain.Manifest) string {
	if m.License == "" {
		return "custom"
	}
	return m.License
}

func render(path string, data recipeData) error {
	f, err := os.Create(path) //nolint:gosec // staged path
	if err != nil {
		return zerr.Wrap(err, "failed to create recipe")
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	if err := recipeTemplate.Execute(f, data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to render recipe"), "path", path)
	}
	return nil
}
