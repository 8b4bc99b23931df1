package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.UnitDiscoverer = (*Discoverer)(nil)

// Discoverer lists the subdirectories of the units root as units.
type Discoverer struct{}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// Discover returns one unit per subdirectory of cfg.UnitsDir, sorted by name.
// Hidden directories, directories starting with an underscore and excluded
// names are skipped.
func (d *Discoverer) Discover(cfg *domain.Config) ([]domain.Unit, error) {
	entries, err := os.ReadDir(cfg.UnitsDir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrUnitsDirNotFound, "path", cfg.UnitsDir)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list units directory"), "path", cfg.UnitsDir)
	}

	units := make([]domain.Unit, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || slices.Contains(cfg.ExcludeUnits, name) {
			continue
		}

		sourceDir := filepath.Join(cfg.UnitsDir, name)
		units = append(units, domain.Unit{
			Name:            name,
			SourceDir:       sourceDir,
			EntryCandidates: entryCandidates(sourceDir, name, cfg.EntryCandidates),
			ArtifactDir:     filepath.Join(cfg.ArtifactsDir, name),
			ModulePath:      path.Join(cfg.UnitPrefix, name),
		})
	}

	slices.SortFunc(units, func(a, b domain.Unit) int {
		return strings.Compare(a.Name, b.Name)
	})
	return units, nil
}

func entryCandidates(sourceDir, name string, templates []string) []string {
	out := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		out = append(out, filepath.Join(sourceDir, strings.ReplaceAll(tmpl, "{name}", name)))
	}
	return out
}
