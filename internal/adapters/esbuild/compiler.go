// Package esbuild implements compilation, bundling and CSS transforms with esbuild.
package esbuild

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// unitMeta is written next to every unit artifact.
type unitMeta struct {
	Unit      string   `json:"unit"`
	Entry     string   `json:"entry"`
	Externals []string `json:"externals"`
	Outputs   []string `json:"outputs"`
}

// CompileUnit compiles req.Entry into req.Unit.ArtifactDir as an ES module.
// The artifact directory is expected to exist and be empty.
func (c *Compiler) CompileUnit(ctx context.Context, req domain.UnitCompileRequest) (domain.UnitCompileResult, error) {
	unit := req.Unit
	seen := &externalSet{}

	result, err := build(ctx, api.BuildOptions{
		EntryPoints:   []string{req.Entry},
		Bundle:        true,
		Write:         false,
		Outdir:        unit.ArtifactDir,
		EntryNames:    domain.UnitEntryName,
		Format:        api.FormatESModule,
		Platform:      api.PlatformBrowser,
		Target:        api.ES2020,
		JSX:           api.JSXAutomatic,
		LogLevel:      api.LogLevelSilent,
		AbsWorkingDir: unit.SourceDir,
		Plugins:       []api.Plugin{unitPlugin(unit, req.Modules, seen)},
	})
	if err != nil {
		return domain.UnitCompileResult{}, zerr.With(zerr.Wrap(err, domain.ErrUnitCompileFailed.Error()), "unit", unit.Name)
	}

	outputs, err := writeOutputs(result.OutputFiles)
	if err != nil {
		return domain.UnitCompileResult{}, zerr.With(err, "unit", unit.Name)
	}

	externals := seen.sorted()
	meta := unitMeta{Unit: unit.Name, Entry: filepath.Base(req.Entry), Externals: externals}
	for _, out := range outputs {
		meta.Outputs = append(meta.Outputs, filepath.Base(out))
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return domain.UnitCompileResult{}, zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	metaPath := filepath.Join(unit.ArtifactDir, domain.MetaFileName)
	if err := os.WriteFile(metaPath, append(data, '\n'), domain.FilePerm); err != nil {
		return domain.UnitCompileResult{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", metaPath)
	}

	return domain.UnitCompileResult{
		Outputs:   append(outputs, metaPath),
		Externals: externals,
	}, nil
}

// Bundle produces one library bundle from the unit artifacts named in req.
func (c *Compiler) Bundle(ctx context.Context, req domain.BundleRequest) error {
	opts := api.BuildOptions{
		EntryPoints:   []string{req.Barrel},
		Bundle:        true,
		Write:         false,
		Outfile:       req.Outfile,
		Platform:      api.PlatformBrowser,
		Target:        api.ES2020,
		JSX:           api.JSXAutomatic,
		LogLevel:      api.LogLevelSilent,
		AbsWorkingDir: filepath.Dir(req.Barrel),
		Plugins:       []api.Plugin{bundlePlugin(req)},
	}
	switch req.Format {
	case domain.FormatIIFE:
		opts.Format = api.FormatIIFE
		opts.GlobalName = req.GlobalName
	default:
		opts.Format = api.FormatESModule
	}

	result, err := build(ctx, opts)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBundleFailed.Error()), "format", string(req.Format))
	}
	if _, err := writeOutputs(result.OutputFiles); err != nil {
		return zerr.With(err, "format", string(req.Format))
	}
	return nil
}

// build runs one esbuild build that is cancelled together with ctx.
func build(ctx context.Context, opts api.BuildOptions) (api.BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return api.BuildResult{}, err
	}

	bctx, cerr := api.Context(opts)
	if cerr != nil {
		return api.BuildResult{}, messagesError(cerr.Errors)
	}
	defer bctx.Dispose()

	stop := context.AfterFunc(ctx, bctx.Cancel)
	defer stop()

	result := bctx.Rebuild()
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if len(result.Errors) > 0 {
		return result, messagesError(result.Errors)
	}
	return result, nil
}

// writeOutputs writes esbuild output files and returns their paths in order.
func writeOutputs(files []api.OutputFile) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.Path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", f.Path)
		}
		if err := os.WriteFile(f.Path, f.Contents, domain.FilePerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", f.Path)
		}
		paths = append(paths, f.Path)
	}
	slices.Sort(paths)
	return paths, nil
}

// messagesError renders esbuild diagnostics as one error, one line per message.
func messagesError(msgs []api.Message) error {
	if len(msgs) == 0 {
		return errors.New("esbuild failed without diagnostics")
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		text := m.Text
		if m.PluginName != "" {
			text = "[" + m.PluginName + "] " + text
		}
		if loc := m.Location; loc != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column, text)
		}
		lines = append(lines, text)
	}
	return errors.New(strings.Join(lines, "\n"))
}

// externalSet collects module paths kept external. esbuild runs plugin
// callbacks concurrently.
type externalSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (s *externalSet) add(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paths == nil {
		s.paths = make(map[string]struct{})
	}
	s.paths[p] = struct{}{}
}

func (s *externalSet) sorted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
