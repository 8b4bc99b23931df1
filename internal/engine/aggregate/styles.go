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

// Styles concatenates unit stylesheets into the library stylesheet.
type Styles struct {
	transformer ports.StyleTransformer
	logger      ports.Logger
}

// NewStyles creates a new Styles aggregator.
func NewStyles(transformer ports.StyleTransformer, logger ports.Logger) *Styles {
	return &Styles{transformer: transformer, logger: logger}
}

// Aggregate writes the primary stylesheet and its compatibility duplicate.
// Units without styles are skipped; the global stylesheet is appended after
// the transformed unit styles when it exists.
func (s *Styles) Aggregate(ctx context.Context, in Input) error {
	cfg := in.Config

	var sb strings.Builder
	for _, unit := range in.Units {
		path := filepath.Join(unit.ArtifactDir, domain.UnitEntryName+".css")
		data, err := os.ReadFile(path) //nolint:gosec // Artifact paths are derived from the config
		if errors.Is(err, iofs.ErrNotExist) {
			continue
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStylesFailed.Error()), "path", path)
		}
		sb.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}

	css, err := s.transformer.Transform(ctx, sb.String(), domain.StyleOptions{
		Targets: cfg.Styles.Targets,
		Minify:  cfg.Styles.Minify,
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrStylesFailed.Error())
	}

	if cfg.Styles.Global != "" {
		global, err := os.ReadFile(cfg.Styles.Global)
		switch {
		case errors.Is(err, iofs.ErrNotExist):
			s.logger.Info(fmt.Sprintf("global stylesheet %s not found, skipping", cfg.Styles.Global))
		case err != nil:
			return zerr.With(zerr.Wrap(err, domain.ErrStylesFailed.Error()), "path", cfg.Styles.Global)
		default:
			if css != "" && !strings.HasSuffix(css, "\n") {
				css += "\n"
			}
			css += string(global)
		}
	}

	if err := os.MkdirAll(cfg.DistDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStylesFailed.Error()), "path", cfg.DistDir)
	}
	for _, name := range []string{cfg.Styles.Primary, cfg.Styles.Compat} {
		if name == "" {
			continue
		}
		path := filepath.Join(cfg.DistDir, name)
		if err := os.WriteFile(path, []byte(css), domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStylesFailed.Error()), "path", path)
		}
	}
	return nil
}
