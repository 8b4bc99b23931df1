// Package builder compiles a single unit into its artifact directory.
package builder

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder compiles one unit in isolation.
type Builder struct {
	compiler      ports.Compiler
	fingerprinter ports.Fingerprinter
}

// New creates a new Builder.
func New(compiler ports.Compiler, fingerprinter ports.Fingerprinter) *Builder {
	return &Builder{compiler: compiler, fingerprinter: fingerprinter}
}

// Result is the outcome of a successful unit build.
type Result struct {
	Entry             string
	Outputs           []string
	Externals         []string
	ArtifactSignature domain.Signature
}

// Build wipes the unit's artifact directory and compiles the unit into it.
// Nothing outside unit.ArtifactDir is written.
func (b *Builder) Build(ctx context.Context, unit domain.Unit, modules domain.ModuleMap) (Result, error) {
	entry, err := ResolveEntry(unit)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := resetDir(unit.ArtifactDir); err != nil {
		return Result{}, zerr.With(err, "unit", unit.Name)
	}

	res, err := b.compiler.CompileUnit(ctx, domain.UnitCompileRequest{
		Unit:    unit,
		Entry:   entry,
		Modules: modules,
	})
	if err != nil {
		return Result{}, err
	}

	sig, err := b.fingerprinter.ArtifactSignature(unit.ArtifactDir)
	if err != nil {
		return Result{}, zerr.With(err, "unit", unit.Name)
	}

	return Result{
		Entry:             entry,
		Outputs:           res.Outputs,
		Externals:         res.Externals,
		ArtifactSignature: sig,
	}, nil
}

// ResolveEntry returns the first of the unit's entry candidates that exists.
func ResolveEntry(unit domain.Unit) (string, error) {
	for _, candidate := range unit.EntryCandidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", candidate)
		}
	}
	return "", zerr.With(zerr.With(domain.ErrMissingEntryPoint, "unit", unit.Name), "candidates", unit.EntryCandidates)
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", dir)
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", dir)
	}
	return nil
}
