package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Logger, error) {
			return New(domain.ParseLogLevel(os.Getenv("SOLBUILD_LOG_LEVEL"))), nil
		},
	})
}
