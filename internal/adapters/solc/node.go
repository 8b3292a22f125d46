package solc

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/solbuild/internal/adapters/logger"
	"go.trai.ch/solbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.compiler_executor"

func init() {
	graft.Register(graft.Node[ports.CompilerExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CompilerExecutor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(os.Getenv("SOLBUILD_COMPILER_DIR"), log), nil
		},
	})
}
