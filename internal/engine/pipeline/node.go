package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solbuild/internal/adapters/logger"
	"go.trai.ch/solbuild/internal/adapters/solc"
	"go.trai.ch/solbuild/internal/adapters/telemetry"
	"go.trai.ch/solbuild/internal/adapters/vyper"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
)

const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{solc.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Pipeline, error) {
			executor, err := graft.Dep[ports.CompilerExecutor](ctx)
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
			toolchains := []ports.Toolchain{
				solc.NewToolchain(domain.CompilerSolc),
				solc.NewToolchain(domain.CompilerResolc),
				solc.NewToolchain(domain.CompilerZksolc),
				vyper.NewToolchain(),
			}
			return New(executor, toolchains, nil, log, tel), nil
		},
	})
}
