package pkgbuild

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.packager.arch"

func init() {
	graft.Register(graft.Node[*Packager]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Packager, error) {
			return NewPackager(), nil
		},
	})
}
