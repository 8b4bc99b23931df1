package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// CompilerNodeID is the unique identifier for the compiler Graft node.
	CompilerNodeID graft.ID = "adapter.esbuild.compiler"
	// StylesNodeID is the unique identifier for the style transformer Graft node.
	StylesNodeID graft.ID = "adapter.esbuild.styles"
)

func init() {
	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Compiler, error) {
			return NewCompiler(), nil
		},
	})

	graft.Register(graft.Node[ports.StyleTransformer]{
		ID:        StylesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StyleTransformer, error) {
			return NewStyleTransformer(), nil
		},
	})
}
