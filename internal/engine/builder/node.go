package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/esbuild" //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/fs"      //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the unit builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{esbuild.CompilerNodeID, fs.FingerprinterNodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			return New(compiler, fingerprinter), nil
		},
	})
}
