package esbuild

import (
	"context"
	"strings"
	"unicode"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StyleTransformer = (*StyleTransformer)(nil)

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"safari":  api.EngineSafari,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"ie":      api.EngineIE,
	"node":    api.EngineNode,
}

// StyleTransformer implements ports.StyleTransformer with esbuild's CSS loader.
// Syntax newer than the targets is lowered and vendor prefixes are added.
type StyleTransformer struct{}

// NewStyleTransformer creates a new StyleTransformer.
func NewStyleTransformer() *StyleTransformer {
	return &StyleTransformer{}
}

// Transform runs css through the pipeline.
func (t *StyleTransformer) Transform(ctx context.Context, css string, opts domain.StyleOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	engines, err := parseEngines(opts.Targets)
	if err != nil {
		return "", err
	}

	result := api.Transform(css, api.TransformOptions{
		Loader:           api.LoaderCSS,
		Engines:          engines,
		MinifyWhitespace: opts.Minify,
		MinifySyntax:     opts.Minify,
		LogLevel:         api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return "", zerr.Wrap(messagesError(result.Errors), domain.ErrStyleTransformFailed.Error())
	}
	return string(result.Code), nil
}

// parseEngines turns targets such as "chrome90" or "safari14.1" into esbuild engines.
func parseEngines(targets []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(targets))
	for _, target := range targets {
		target = strings.ToLower(strings.TrimSpace(target))
		i := strings.IndexFunc(target, unicode.IsDigit)
		if i <= 0 {
			return nil, zerr.With(domain.ErrStyleTransformFailed, "target", target)
		}
		name, ok := engineNames[target[:i]]
		if !ok {
			return nil, zerr.With(domain.ErrStyleTransformFailed, "target", target)
		}
		engines = append(engines, api.Engine{Name: name, Version: target[i:]})
	}
	return engines, nil
}
