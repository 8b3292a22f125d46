package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/solbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/solbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			// Progress rendering is opt-in; plain log output is the default
			// so CI logs stay line-oriented.
			if os.Getenv("SOLBUILD_PROGRESS") == "1" {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
