package aggregate

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

const declarationIndex = "index.d.ts"

// Declarations emits type declarations through external commands and
// collects them into the dist directory.
type Declarations struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewDeclarations creates a new Declarations aggregator.
func NewDeclarations(executor ports.Executor, logger ports.Logger) *Declarations {
	return &Declarations{executor: executor, logger: logger}
}

// Aggregate emits declarations for the rebuilt units, copies every unit's
// declarations into dist/types/<unit> and runs the whole-project emission.
// When the project emission fails a synthetic index is written instead, so
// the dist directory never ships without type information.
func (d *Declarations) Aggregate(ctx context.Context, in Input) error {
	cfg := in.Config

	for _, unit := range in.Units {
		entry, rebuilt := in.Entries[unit.Name]
		if !rebuilt || len(cfg.Declarations.Unit) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		args := expand(cfg.Declarations.Unit, map[string]string{
			"{entry}":  entry,
			"{outDir}": filepath.Join(unit.ArtifactDir, domain.TypesDirName),
			"{unit}":   unit.Name,
			"{root}":   cfg.Root,
		})
		if err := d.executor.Execute(ctx, domain.Command{Args: args, Dir: cfg.Root}); err != nil {
			if ctx.Err() != nil {
				return err
			}
			d.logger.Warn(fmt.Sprintf("unit %s: declaration emission failed: %v", unit.Name, err))
		}
	}

	typesDir := filepath.Join(cfg.DistDir, domain.TypesDirName)
	if err := os.RemoveAll(typesDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDeclarationsFailed.Error()), "path", typesDir)
	}
	if err := os.MkdirAll(typesDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDeclarationsFailed.Error()), "path", typesDir)
	}

	for _, unit := range in.Units {
		if err := copyTypes(unit, typesDir); err != nil {
			return zerr.With(err, "unit", unit.Name)
		}
	}

	if len(cfg.Declarations.Project) > 0 {
		args := expand(cfg.Declarations.Project, map[string]string{
			"{outDir}": typesDir,
			"{root}":   cfg.Root,
		})
		err := d.executor.Execute(ctx, domain.Command{Args: args, Dir: cfg.Root})
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		d.logger.Warn(fmt.Sprintf("project declaration emission failed, writing fallback index: %v", err))
	}

	return writeFallbackIndex(typesDir, in.Units)
}

func expand(template []string, vars map[string]string) []string {
	out := make([]string, 0, len(template))
	for _, arg := range template {
		for k, v := range vars {
			arg = strings.ReplaceAll(arg, k, v)
		}
		out = append(out, arg)
	}
	return out
}

func copyTypes(unit domain.Unit, typesDir string) error {
	src := filepath.Join(unit.ArtifactDir, domain.TypesDirName)
	info, err := os.Stat(src)
	if errors.Is(err, iofs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDeclarationsFailed.Error()), "path", src)
	}

	dst := filepath.Join(typesDir, unit.Name)
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDeclarationsFailed.Error()), "path", dst)
	}
	return nil
}

// writeFallbackIndex re-exports every unit that has a top-level declaration
// file, or writes an empty module when none has.
func writeFallbackIndex(typesDir string, units []domain.Unit) error {
	var sb strings.Builder
	for _, unit := range units {
		for _, name := range []string{declarationIndex, unit.Name + ".d.ts"} {
			if fileExists(filepath.Join(typesDir, unit.Name, name)) {
				fmt.Fprintf(&sb, "export * from \"./%s/%s\";\n", unit.Name, strings.TrimSuffix(name, ".d.ts"))
				break
			}
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("export {};\n")
	}

	path := filepath.Join(typesDir, declarationIndex)
	if err := os.WriteFile(path, []byte(sb.String()), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDeclarationsFailed.Error()), "path", path)
	}
	return nil
}
