package ghrelease

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shipper/internal/adapters/gitrepo"
	"go.trai.ch/shipper/internal/core/ports"
)

const NodeID graft.ID = "adapter.releasehost"

func init() {
	graft.Register(graft.Node[ports.ReleaseHost]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ReleaseHost, error) {
			return NewClient(gitrepo.TokenFromEnv()), nil
		},
	})
}
