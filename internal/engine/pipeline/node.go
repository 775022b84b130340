package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shipper/internal/adapters/archive"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/checksum"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/debpkg"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/ghrelease"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/gitrepo"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/logger"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/pkgbuild"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/adapters/toolchain"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shipper/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			gitrepo.NodeID,
			ghrelease.NodeID,
			debpkg.NodeID,
			pkgbuild.NodeID,
			archive.NodeID,
			checksum.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			builder, err := graft.Dep[ports.Builder](ctx)
			if err != nil {
				return nil, err
			}

			tagSvc, err := graft.Dep[ports.TagService](ctx)
			if err != nil {
				return nil, err
			}

			host, err := graft.Dep[ports.ReleaseHost](ctx)
			if err != nil {
				return nil, err
			}

			deb, err := graft.Dep[*debpkg.Packager](ctx)
			if err != nil {
				return nil, err
			}

			arch, err := graft.Dep[*pkgbuild.Packager](ctx)
			if err != nil {
				return nil, err
			}

			archives, err := graft.Dep[*archive.Set](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			packagers := []ports.Packager{
				deb,
				arch,
				archives.Windows,
				archives.MacOS,
			}
			return New(builder, tagSvc, host, packagers, hasher, log, tel), nil
		},
	})
}
