// Package debpkg packages linux build artifacts as Debian packages.
package debpkg

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Packager)(nil)

// controlTemplate renders the Debian control file, every field populated
// verbatim from the manifest.
var controlTemplate = template.Must(template.New("control").Parse(
	`Package: {{.Package}}
Version: {{.Version}}
Section: base
Priority: optional
Architecture: {{.Architecture}}
Maintainer: {{.Maintainer}}
Description: {{.Description}}
`))

// controlData are the named slots of the control file.
type controlData struct {
	Package      string
	Version      string
	Architecture string
	Maintainer   string
	Description  string
}

// Packager implements ports.Packager for the Debian family. The package
// tree is staged under outDir and assembled with dpkg-deb.
type Packager struct {
	runner ports.CommandRunner
}

// NewPackager creates a Debian packager.
func NewPackager(runner ports.CommandRunner) *Packager {
	return &Packager{runner: runner}
}

// Family returns the platform family this packager serves.
func (p *Packager) Family() domain.Family {
	return domain.FamilyDebian
}

// Package builds one .deb per linux artifact. The file name keeps the
// source architecture token; the control file carries the mapped Debian
// architecture.
func (p *Packager) Package(ctx context.Context, m domain.Manifest, artifacts []domain.BuildArtifact, outDir string) ([]domain.PackageArtifact, error) {
	linux := filterOS(artifacts, domain.OSLinux)
	if len(linux) == 0 {
		return nil, zerr.With(domain.ErrMissingArtifact, "family", string(domain.FamilyDebian))
	}

	out := make([]domain.PackageArtifact, 0, len(linux))
	for _, artifact := range linux {
		pkg, err := p.packageOne(ctx, m, artifact, outDir)
		if err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, nil
}

func (p *Packager) packageOne(ctx context.Context, m domain.Manifest, artifact domain.BuildArtifact, outDir string) (domain.PackageArtifact, error) {
	debArch, err := domain.DebianArch(artifact.Target.Arch)
	if err != nil {
		return domain.PackageArtifact{}, err
	}

	fileName := FileName(m.Name, m.Version, artifact.Target.Arch)
	stageDir := filepath.Join(outDir, "debian", fmt.Sprintf("%s_%s_%s", m.Name, m.Version, debArch))

	if err := p.stage(m, artifact, stageDir, debArch); err != nil {
		return domain.PackageArtifact{}, err
	}

	debPath := filepath.Join(outDir, "debian", fileName)
	cmd := ports.Command{
		Name: "dpkg-deb",
		Args: []string{"--build", "--root-owner-group", stageDir, debPath},
	}
	if err := p.runner.Run(ctx, cmd); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "dpkg-deb failed"), "target", artifact.Target.Name())
		return domain.PackageArtifact{}, wrapped
	}

	return domain.PackageArtifact{
		Family: domain.FamilyDebian,
		Arch:   artifact.Target.Arch,
		Format: "deb",
		Path:   debPath,
	}, nil
}

// stage lays out the package tree: DEBIAN/control plus the binary under
// usr/bin.
func (p *Packager) stage(m domain.Manifest, artifact domain.BuildArtifact, stageDir, debArch string) error {
	controlDir := filepath.Join(stageDir, "DEBIAN")
	binDir := filepath.Join(stageDir, "usr", "bin")
	for _, dir := range []string{controlDir, binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // package tree needs traversal perms
			return zerr.Wrap(err, "failed to stage package tree")
		}
	}

	control, err := os.Create(filepath.Join(controlDir, "control")) //nolint:gosec // staged path
	if err != nil {
		return zerr.Wrap(err, "failed to create control file")
	}
	defer control.Close() //nolint:errcheck // best effort close in defer

	data := controlData{
		Package:      m.Name,
		Version:      m.Version,
		Architecture: debArch,
		Maintainer:   m.Maintainer(),
		Description:  m.Description,
	}
	if err := controlTemplate.Execute(control, data); err != nil {
		return zerr.Wrap(err, "failed to render control file")
	}

	if err := copyFile(artifact.BinaryPath, filepath.Join(binDir, m.Name), 0o755); err != nil {
		return zerr.With(err, "target", artifact.Target.Name())
	}
	return nil
}

// FileName returns the deterministic package file name, e.g.
// tpi-1.0.7-x86_64-linux.deb.
func FileName(name, version string, arch domain.Arch) string {
	return fmt.Sprintf("%s-%s-%s-linux.deb", name, version, arch)
}

func filterOS(artifacts []domain.BuildArtifact, os domain.OS) []domain.BuildArtifact {
	var out []domain.BuildArtifact
	for _, a := range artifacts {
		if a.Target.OS == os {
			out = append(out, a)
		}
	}
	return out
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // artifact path produced by the matrix
	if err != nil {
		return zerr.With(domain.ErrMissingArtifact, "path", src)
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // staged path
	if err != nil {
		return zerr.Wrap(err, "failed to create destination")
	}
	defer out.Close() //nolint:errcheck // best effort close in defer

	if _, err := io.Copy(out, in); err != nil {
		return zerr.Wrap(err, "failed to copy binary")
	}
	return nil
}
