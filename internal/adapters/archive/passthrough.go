// Package archive places raw executables for families without a native
// packaging format.
package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Passthrough)(nil)

// Passthrough implements ports.Packager for the Windows and macOS families:
// the executable passes through unchanged into an architecture-named
// directory.
type Passthrough struct {
	family domain.Family
}

// NewPassthrough creates a passthrough packager for family.
func NewPassthrough(family domain.Family) *Passthrough {
	return &Passthrough{family: family}
}

// Family returns the platform family this packager serves.
func (p *Passthrough) Family() domain.Family {
	return p.family
}

// Package copies each matching artifact under outDir/<family>/<arch>/. An
// empty input set fails loudly; no architecture is silently dropped.
func (p *Passthrough) Package(ctx context.Context, m domain.Manifest, artifacts []domain.BuildArtifact, outDir string) ([]domain.PackageArtifact, error) {
	var out []domain.PackageArtifact
	for _, artifact := range artifacts {
		if artifact.Target.OS != p.family.OS() {
			continue
		}

		dir := filepath.Join(outDir, string(p.family), string(artifact.Target.Arch))
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, zerr.Wrap(err, "failed to create output directory")
		}

		dst := filepath.Join(dir, filepath.Base(artifact.BinaryPath))
		if err := copyFile(artifact.BinaryPath, dst); err != nil {
			return nil, zerr.With(err, "target", artifact.Target.Name())
		}

		out = append(out, domain.PackageArtifact{
			Family: p.family,
			Arch:   artifact.Target.Arch,
			Format: "binary",
			Path:   dst,
		})
	}

	if len(out) == 0 {
		return nil, zerr.With(domain.ErrMissingArtifact, "family", string(p.family))
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // artifact path produced by the matrix
	if err != nil {
		return zerr.With(domain.ErrMissingArtifact, "path", src)
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755) //nolint:gosec // executable artifact
	if err != nil {
		return zerr.Wrap(err, "failed to create destination")
	}
	defer out.Close() //nolint:errcheck // best effort close in defer

	if _, err := io.Copy(out, in); err != nil {
		return zerr.Wrap(err, "failed to copy binary")
	}
	return nil
}
