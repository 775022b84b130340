// Package toolchain invokes the compiler toolchain for each build target.
package toolchain

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Builder = (*CargoBuilder)(nil)

// CargoBuilder implements ports.Builder by invoking cargo, or cross for
// targets marked as cross-compiled.
type CargoBuilder struct {
	runner ports.CommandRunner
}

// NewCargoBuilder creates a new CargoBuilder.
func NewCargoBuilder(runner ports.CommandRunner) *CargoBuilder {
	return &CargoBuilder{runner: runner}
}

// Build compiles the tool for one target. The produced binary lands in the
// toolchain's per-triple release directory; its path is recorded on the
// artifact rather than rediscovered later.
func (b *CargoBuilder) Build(ctx context.Context, m domain.Manifest, target domain.Target, srcDir string) (domain.BuildArtifact, error) {
	tool := "cargo"
	if target.Cross {
		tool = "cross"
	}

	cmd := ports.Command{
		Name: tool,
		Args: []string{"build", "--release", "--locked", "--target", target.Triple},
		Dir:  srcDir,
	}
	if err := b.runner.Run(ctx, cmd); err != nil {
		return domain.BuildArtifact{}, zerr.With(zerr.Wrap(err, "build failed"), "target", target.Name())
	}

	binary := filepath.Join(srcDir, "target", target.Triple, "release", BinaryName(m.Name, target.OS))
	if _, err := os.Stat(binary); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "build produced no binary"), "target", target.Name())
		return domain.BuildArtifact{}, zerr.With(wrapped, "path", binary)
	}

	return domain.BuildArtifact{Target: target, BinaryPath: binary}, nil
}

// BinaryName returns the platform file name of the tool's executable.
func BinaryName(name string, os domain.OS) string {
	if os == domain.OSWindows {
		return name + ".exe"
	}
	return name
}
