package aggregate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Bundler produces the ESM and IIFE library bundles.
type Bundler struct {
	compiler ports.Compiler
}

// NewBundler creates a new Bundler.
func NewBundler(compiler ports.Compiler) *Bundler {
	return &Bundler{compiler: compiler}
}

// Aggregate bundles every unit artifact and the shared modules into the two
// library formats. The synthesized barrel module is always removed.
func (b *Bundler) Aggregate(ctx context.Context, in Input) error {
	cfg := in.Config
	barrel, err := writeBarrel(cfg, in.Units)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(barrel) }()

	artifacts := make(map[string]string, len(in.Units))
	for _, unit := range in.Units {
		artifacts[unit.ModulePath] = artifactEntry(unit)
	}
	modules := cfg.ModuleMap(in.Units)

	g, ctx := errgroup.WithContext(ctx)
	for _, req := range []domain.BundleRequest{
		{Outfile: filepath.Join(cfg.DistDir, cfg.Bundle.ESM), Format: domain.FormatESM},
		{Outfile: filepath.Join(cfg.DistDir, cfg.Bundle.IIFE), Format: domain.FormatIIFE, GlobalName: cfg.Bundle.GlobalName},
	} {
		req.Barrel = barrel
		req.Artifacts = artifacts
		req.Modules = modules
		g.Go(func() error {
			return b.compiler.Bundle(ctx, req)
		})
	}
	return g.Wait()
}

// writeBarrel writes a module re-exporting every unit and shared module into
// the artifacts root, next to the files it imports.
func writeBarrel(cfg *domain.Config, units []domain.Unit) (string, error) {
	var sb strings.Builder
	for _, unit := range units {
		writeExport(&sb, artifactEntry(unit))
	}
	for _, shared := range cfg.SharedFiles {
		if isScript(shared) && fileExists(shared) {
			writeExport(&sb, shared)
		}
	}

	if err := os.MkdirAll(cfg.ArtifactsDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundleFailed.Error()), "path", cfg.ArtifactsDir)
	}
	f, err := os.CreateTemp(cfg.ArtifactsDir, ".barrel-*.js")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundleFailed.Error()), "path", cfg.ArtifactsDir)
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundleFailed.Error()), "path", f.Name())
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundleFailed.Error()), "path", f.Name())
	}
	return f.Name(), nil
}

func writeExport(sb *strings.Builder, path string) {
	// JSON string syntax is valid JavaScript string syntax.
	quoted, _ := json.Marshal(filepath.ToSlash(path))
	sb.WriteString("export * from ")
	sb.Write(quoted)
	sb.WriteString(";\n")
}

func isScript(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs":
		return true
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
