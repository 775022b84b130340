package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	tape "go.trai.ch/shipper/internal/adapters/telemetry/progrock"
	"go.trai.ch/shipper/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			// Progress recording is opt-in; CI logs stay line oriented.
			if os.Getenv("SHIPPER_PROGRESS") != "" {
				return tape.New(), nil
			}
			return NewNoop(), nil
		},
	})
}
