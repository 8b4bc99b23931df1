package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// Compiler compiles single units and bundles the whole library.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// CompileUnit compiles one unit into its artifact directory, keeping the
	// framework, every other unit and every shared module external.
	CompileUnit(ctx context.Context, req domain.UnitCompileRequest) (domain.UnitCompileResult, error)

	// Bundle produces a single library bundle from the unit artifacts.
	Bundle(ctx context.Context, req domain.BundleRequest) error
}

// StyleTransformer runs the CSS pipeline over a stylesheet.
type StyleTransformer interface {
	Transform(ctx context.Context, css string, opts domain.StyleOptions) (string, error)
}
