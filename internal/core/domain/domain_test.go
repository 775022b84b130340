package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestManifest_Validate(t *testing.T) {
	m := domain.Manifest{Name: "tpi", Version: "1.0.7"}
	require.NoError(t, m.Validate())

	m.Version = "release-one"
	err := m.Validate()
	require.Error(t, err, "non-semver version must be rejected")
	assert.True(t, errors.Is(err, domain.ErrMalformedManifest))

	m.Version = ""
	assert.True(t, errors.Is(m.Validate(), domain.ErrMalformedManifest))
}

func TestManifest_Maintainer(t *testing.T) {
	m := domain.Manifest{Authors: []string{"Sven Rademakers <sven@example.com>", "Ruslan"}}
	assert.Equal(t, "Sven Rademakers <sven@example.com>", m.Maintainer())
	assert.Empty(t, (domain.Manifest{}).Maintainer())
}

func TestTagFor(t *testing.T) {
	assert.Equal(t, "v1.0.6", domain.TagFor("1.0.6"))
}

func TestDebianArch(t *testing.T) {
	cases := map[domain.Arch]string{
		domain.ArchX8664:   "amd64",
		domain.ArchAarch64: "arm64",
	}
	for in, want := range cases {
		got, err := domain.DebianArch(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := domain.DebianArch(domain.Arch("riscv64"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownArch))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "riscv64", zErr.Metadata()["arch"])
}

func TestParseFamily(t *testing.T) {
	for _, f := range domain.Families() {
		got, err := domain.ParseFamily(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := domain.ParseFamily("solaris")
	assert.True(t, errors.Is(err, domain.ErrUnknownFamily))
}

func TestFamily_OS(t *testing.T) {
	assert.Equal(t, domain.OSLinux, domain.FamilyDebian.OS())
	assert.Equal(t, domain.OSLinux, domain.FamilyArch.OS())
	assert.Equal(t, domain.OSWindows, domain.FamilyWindows.OS())
	assert.Equal(t, domain.OSDarwin, domain.FamilyMacOS.OS())
}

func TestArtifactSet_Add_Duplicate(t *testing.T) {
	set := domain.NewArtifactSet()
	a := domain.PackageArtifact{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Format: "deb", Path: "a.deb"}

	require.NoError(t, set.Add(a))

	err := set.Add(domain.PackageArtifact{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Format: "deb", Path: "b.deb"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateArtifactKey))
	assert.Equal(t, 1, set.Len(), "duplicate must not overwrite")
}

func TestArtifactSet_Sorted(t *testing.T) {
	set := domain.NewArtifactSet()
	for _, a := range []domain.PackageArtifact{
		{Family: domain.FamilyWindows, Arch: domain.ArchX8664},
		{Family: domain.FamilyDebian, Arch: domain.ArchX8664},
		{Family: domain.FamilyDebian, Arch: domain.ArchAarch64},
	} {
		require.NoError(t, set.Add(a))
	}

	got := set.Sorted()
	assert.Equal(t, domain.FamilyDebian, got[0].Family)
	assert.Equal(t, domain.ArchAarch64, got[0].Arch)
	assert.Equal(t, domain.FamilyWindows, got[2].Family)
}

func TestMatrixResult_Err(t *testing.T) {
	complete := domain.MatrixResult{Artifacts: []domain.BuildArtifact{{}}}
	require.NoError(t, complete.Err())

	partial := domain.MatrixResult{
		Failed: []domain.TargetFailure{
			{Target: domain.Target{Arch: domain.ArchAarch64, OS: domain.OSLinux}, Err: errors.New("boom")},
		},
	}
	err := partial.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartialBuild))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "aarch64-linux", zErr.Metadata()["failed_targets"])
}

func TestRenderNotes(t *testing.T) {
	m := domain.Manifest{Name: "tpi", Version: "1.0.7", Description: "BMC command line tool"}
	notes := domain.RenderNotes(m, []domain.PackageArtifact{
		{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Format: "deb", Digest: "abc123"},
	})

	assert.Contains(t, notes, "tpi 1.0.7")
	assert.Contains(t, notes, "BMC command line tool")
	assert.Contains(t, notes, "| debian | x86_64 | deb | abc123 |")
}

func TestPipelineConfig_TargetsFor(t *testing.T) {
	cfg := domain.PipelineConfig{Targets: domain.DefaultTargets()}

	linux := cfg.TargetsFor(domain.FamilyDebian)
	require.Len(t, linux, 2)

	win := cfg.TargetsFor(domain.FamilyWindows)
	require.Len(t, win, 1)
	assert.Equal(t, domain.OSWindows, win[0].OS)
}
