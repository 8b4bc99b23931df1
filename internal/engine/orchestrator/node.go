package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/cas"       //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/esbuild"   //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/linear"    //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/logger"    //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/metrics"   //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/shell"     //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/telemetry" //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/aggregate"
	"go.trai.ch/kiln/internal/engine/builder"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			builder.NodeID,
			esbuild.CompilerNodeID,
			esbuild.StylesNodeID,
			shell.NodeID,
			cas.NodeID,
			logger.NodeID,
			linear.NodeID,
			metrics.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Orchestrator, error) {
	b, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}
	compiler, err := graft.Dep[ports.Compiler](ctx)
	if err != nil {
		return nil, err
	}
	styles, err := graft.Dep[ports.StyleTransformer](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}
	recorder, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(b, Aggregators{
		Bundle:       aggregate.NewBundler(compiler),
		Declarations: aggregate.NewDeclarations(executor, log),
		Styles:       aggregate.NewStyles(styles, log),
	}, store, Observers{
		Logger:   log,
		Reporter: reporter,
		Metrics:  recorder,
		Tracer:   tracer,
	}), nil
}
