package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/shipper/internal/core/ports/mocks"
	"go.trai.ch/shipper/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

var manifest = domain.Manifest{
	Name:        "tpi",
	Version:     "2.0.0",
	Authors:     []string{"ci <ci@example.com>"},
	Description: "BMC command line tool",
}

type fixture struct {
	builder   *mocks.MockBuilder
	tags      *mocks.MockTagService
	host      *mocks.MockReleaseHost
	packagers []*mocks.MockPackager
	hasher    *mocks.MockHasher
	pipe      *pipeline.Pipeline
}

// discardLogger keeps pipeline output out of test logs.
type discardLogger struct{}

func (discardLogger) Info(string) {}
func (discardLogger) Error(error) {}

func newFixture(t *testing.T, families ...domain.Family) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		builder: mocks.NewMockBuilder(ctrl),
		tags:    mocks.NewMockTagService(ctrl),
		host:    mocks.NewMockReleaseHost(ctrl),
		hasher:  mocks.NewMockHasher(ctrl),
	}

	var packagers []ports.Packager
	for _, family := range families {
		p := mocks.NewMockPackager(ctrl)
		p.EXPECT().Family().Return(family).AnyTimes()
		f.packagers = append(f.packagers, p)
		packagers = append(packagers, p)
	}

	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Done(gomock.Any()).AnyTimes()
	tel.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), vertex).AnyTimes()

	f.pipe = pipeline.New(f.builder, f.tags, f.host, packagers, f.hasher, discardLogger{}, tel)
	return f
}

func testConfig(targets ...domain.Target) domain.PipelineConfig {
	return domain.PipelineConfig{
		SourceDir:   "/src",
		OutDir:      "/out",
		Repository:  "turing-machines/tpi",
		Parallelism: 2,
		Targets:     targets,
	}
}

func stageFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
	return path
}

func linuxTarget(arch domain.Arch) domain.Target {
	return domain.Target{Arch: arch, Triple: string(arch) + "-unknown-linux-gnu", OS: domain.OSLinux}
}

func TestRun_TagExistsShortCircuits(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	cfg := testConfig(linuxTarget(domain.ArchX8664))

	// Zero build units may be dispatched when the gate closes the run.
	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(true, nil)

	require.NoError(t, f.pipe.Run(context.Background(), manifest, cfg))
}

func TestRun_GateQueryFailurePropagates(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	cfg := testConfig(linuxTarget(domain.ArchX8664))

	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, errors.New("network down"))

	err := f.pipe.Run(context.Background(), manifest, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gate check failed")
}

func TestRun_FullPublish(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	targets := []domain.Target{linuxTarget(domain.ArchX8664), linuxTarget(domain.ArchAarch64)}
	cfg := testConfig(targets...)

	gomock.InOrder(
		f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil),
		f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil),
		f.tags.EXPECT().Create(gomock.Any(), "/src", "v2.0.0", "tpi 2.0.0").Return(nil),
	)

	for _, target := range targets {
		f.builder.EXPECT().
			Build(gomock.Any(), manifest, target, "/src").
			Return(domain.BuildArtifact{Target: target, BinaryPath: "/bin/" + target.Name()}, nil)
	}

	debPath := stageFile(t, "tpi-2.0.0-x86_64-linux.deb")
	f.packagers[0].EXPECT().
		Package(gomock.Any(), manifest, gomock.Len(2), "/out").
		Return([]domain.PackageArtifact{
			{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Format: "deb", Path: debPath},
		}, nil)

	f.hasher.EXPECT().FileDigest(debPath).Return("cafe0123cafe0123", nil)

	f.host.EXPECT().
		CreateRelease(gomock.Any(), gomock.Cond(func(rel domain.Release) bool {
			return rel.Tag == "v2.0.0" &&
				rel.Repository == "turing-machines/tpi" &&
				len(rel.Artifacts) == 1 &&
				rel.Artifacts[0].Digest == "cafe0123cafe0123"
		})).
		Return(nil)

	require.NoError(t, f.pipe.Run(context.Background(), manifest, cfg))
}

func TestRun_PartialBuildHaltsBeforePackaging(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	ok := linuxTarget(domain.ArchX8664)
	bad := linuxTarget(domain.ArchAarch64)
	cfg := testConfig(ok, bad)

	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil)
	f.builder.EXPECT().
		Build(gomock.Any(), manifest, ok, "/src").
		Return(domain.BuildArtifact{Target: ok}, nil)
	f.builder.EXPECT().
		Build(gomock.Any(), manifest, bad, "/src").
		Return(domain.BuildArtifact{}, errors.New("linker exploded"))
	// No Package, Create or CreateRelease expectations: packaging must
	// never run on a partial matrix.

	err := f.pipe.Run(context.Background(), manifest, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartialBuild))
	assert.Contains(t, err.Error(), "partial")
}

func TestRun_SiblingsFinishAfterFailure(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	targets := []domain.Target{
		linuxTarget(domain.ArchX8664),
		linuxTarget(domain.ArchAarch64),
		{Arch: domain.ArchX8664, Triple: "x86_64-apple-darwin", OS: domain.OSDarwin},
	}
	cfg := testConfig(targets...)

	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil)
	// Every scheduled target builds even though the first one fails.
	f.builder.EXPECT().
		Build(gomock.Any(), manifest, gomock.Any(), "/src").
		Return(domain.BuildArtifact{}, errors.New("boom")).
		Times(3)

	err := f.pipe.Run(context.Background(), manifest, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartialBuild))
}

func TestRun_PublishRaceIsSuccessfulNoop(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	target := linuxTarget(domain.ArchX8664)
	cfg := testConfig(target)

	// Early check passes, a concurrent run tags in between, re-check wins.
	gomock.InOrder(
		f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil),
		f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(true, nil),
	)

	f.builder.EXPECT().
		Build(gomock.Any(), manifest, target, "/src").
		Return(domain.BuildArtifact{Target: target, BinaryPath: "/bin/tpi"}, nil)

	debPath := stageFile(t, "tpi.deb")
	f.packagers[0].EXPECT().
		Package(gomock.Any(), manifest, gomock.Any(), "/out").
		Return([]domain.PackageArtifact{
			{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Format: "deb", Path: debPath},
		}, nil)
	f.hasher.EXPECT().FileDigest(debPath).Return("feed", nil)
	// No Create and no CreateRelease: the loser exits successfully.

	require.NoError(t, f.pipe.Run(context.Background(), manifest, cfg))
}

func TestRun_DuplicateArtifactKeyAborts(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian, domain.FamilyArch)
	target := linuxTarget(domain.ArchX8664)
	cfg := testConfig(target)

	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil)
	f.builder.EXPECT().
		Build(gomock.Any(), manifest, target, "/src").
		Return(domain.BuildArtifact{Target: target, BinaryPath: "/bin/tpi"}, nil)

	a := stageFile(t, "a.deb")
	b := stageFile(t, "b.deb")
	// Both packagers claim the same (family, arch) key.
	f.packagers[0].EXPECT().
		Package(gomock.Any(), manifest, gomock.Any(), "/out").
		Return([]domain.PackageArtifact{{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Path: a}}, nil)
	f.packagers[1].EXPECT().
		Package(gomock.Any(), manifest, gomock.Any(), "/out").
		Return([]domain.PackageArtifact{{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Path: b}}, nil)
	f.hasher.EXPECT().FileDigest(gomock.Any()).Return("d", nil).Times(2)

	err := f.pipe.Run(context.Background(), manifest, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateArtifactKey))
}

func TestRun_PackagingErrorIsFatal(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	target := linuxTarget(domain.ArchX8664)
	cfg := testConfig(target)

	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").Return(false, nil)
	f.builder.EXPECT().
		Build(gomock.Any(), manifest, target, "/src").
		Return(domain.BuildArtifact{Target: target}, nil)
	f.packagers[0].EXPECT().
		Package(gomock.Any(), manifest, gomock.Any(), "/out").
		Return(nil, domain.ErrMissingArtifact)

	err := f.pipe.Run(context.Background(), manifest, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingArtifact))
}

func TestRun_NoTargets(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)

	err := f.pipe.Run(context.Background(), manifest, testConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoTargets))
}

func TestRun_Idempotent(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	target := linuxTarget(domain.ArchX8664)
	cfg := testConfig(target)

	debPath := stageFile(t, "tpi.deb")
	var created bool
	f.tags.EXPECT().Exists(gomock.Any(), "/src", "v2.0.0").
		DoAndReturn(func(context.Context, string, string) (bool, error) { return created, nil }).
		AnyTimes()
	f.tags.EXPECT().Create(gomock.Any(), "/src", "v2.0.0", gomock.Any()).
		DoAndReturn(func(context.Context, string, string, string) error {
			created = true
			return nil
		})

	f.builder.EXPECT().
		Build(gomock.Any(), manifest, target, "/src").
		Return(domain.BuildArtifact{Target: target, BinaryPath: "/bin/tpi"}, nil)
	f.packagers[0].EXPECT().
		Package(gomock.Any(), manifest, gomock.Any(), "/out").
		Return([]domain.PackageArtifact{{Family: domain.FamilyDebian, Arch: domain.ArchX8664, Path: debPath}}, nil)
	f.hasher.EXPECT().FileDigest(debPath).Return("d", nil)
	f.host.EXPECT().CreateRelease(gomock.Any(), gomock.Any()).Return(nil)

	// First run publishes, second run is a pure no-op.
	require.NoError(t, f.pipe.Run(context.Background(), manifest, cfg))
	require.NoError(t, f.pipe.Run(context.Background(), manifest, cfg))
}

func TestPackageFamily(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian, domain.FamilyWindows)
	linux := linuxTarget(domain.ArchX8664)
	win := domain.Target{Arch: domain.ArchX8664, Triple: "x86_64-pc-windows-gnu", OS: domain.OSWindows}
	cfg := testConfig(linux, win)

	// Only the windows target builds for the windows family.
	f.builder.EXPECT().
		Build(gomock.Any(), manifest, win, "/src").
		Return(domain.BuildArtifact{Target: win, BinaryPath: "/bin/tpi.exe"}, nil)
	f.packagers[1].EXPECT().
		Package(gomock.Any(), manifest, gomock.Len(1), "/out").
		Return([]domain.PackageArtifact{{Family: domain.FamilyWindows, Arch: domain.ArchX8664, Path: "/out/windows/x86_64/tpi.exe"}}, nil)

	require.NoError(t, f.pipe.PackageFamily(context.Background(), manifest, cfg, domain.FamilyWindows))
}

func TestPackageFamily_NoPackagerForFamily(t *testing.T) {
	f := newFixture(t, domain.FamilyDebian)
	linux := linuxTarget(domain.ArchX8664)
	cfg := testConfig(linux)

	f.builder.EXPECT().
		Build(gomock.Any(), manifest, linux, "/src").
		Return(domain.BuildArtifact{Target: linux}, nil)

	err := f.pipe.PackageFamily(context.Background(), manifest, cfg, domain.FamilyArch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownFamily))
}
