package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shipper/internal/core/domain"
)

const NodeID graft.ID = "adapter.packager.archive"

// Set holds the passthrough packager of each archive family. Graft resolves
// dependencies by type, so both live behind one registered value.
type Set struct {
	Windows *Passthrough
	MacOS   *Passthrough
}

func init() {
	graft.Register(graft.Node[*Set]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Set, error) {
			return &Set{
				Windows: NewPassthrough(domain.FamilyWindows),
				MacOS:   NewPassthrough(domain.FamilyMacOS),
			}, nil
		},
	})
}
