package gitrepo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shipper/internal/core/ports"
)

const NodeID graft.ID = "adapter.tags"

func init() {
	graft.Register(graft.Node[ports.TagService]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.TagService, error) {
			return NewService(TokenFromEnv()), nil
		},
	})
}
